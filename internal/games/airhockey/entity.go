package airhockey

import (
	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Entity is one simulated body. Paddles carry a velocity of zero: their
// position follows input directly.
type Entity struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Entities is the store of every dynamic body on the table. Only the physics
// step and the input router write to it; everything else reads a Snapshot.
type Entities struct {
	Puck    Entity
	Paddle1 Entity
	Paddle2 Entity
}

// paddle returns the paddle owned by p, or nil.
func (e *Entities) paddle(p core.PlayerID) *Entity {
	switch p {
	case core.Player1:
		return &e.Paddle1
	case core.Player2:
		return &e.Paddle2
	default:
		return nil
	}
}

// table is the fixed geometry and physics of one round.
type table struct {
	field core.Vec2
	puckR float64
	goalW float64
	gap   float64
	phys  config.HockeyPhysics
}

func newTable(cfg config.HockeyConfig) table {
	return table{
		field: core.V(cfg.Table.Width, cfg.Table.Height),
		puckR: cfg.Table.PuckRadius,
		goalW: cfg.Table.GoalWidth,
		gap:   cfg.Table.CenterGap,
		phys:  cfg.Physics,
	}
}

func (t table) center() core.Vec2 {
	return t.field.Scale(0.5)
}

// goalSpan returns the open interval of x covered by each goal mouth.
func (t table) goalSpan() (lo, hi float64) {
	return (t.field.X - t.goalW) / 2, (t.field.X + t.goalW) / 2
}

// inGoal reports whether x lies strictly inside the goal mouth.
func (t table) inGoal(x float64) bool {
	lo, hi := t.goalSpan()
	return x > lo && x < hi
}

// side returns the half a logical y coordinate belongs to.
func (t table) side(y float64) core.PlayerID {
	if y < t.field.Y/2 {
		return core.Player1
	}
	return core.Player2
}

// paddleStart is the resting spot for a side's paddle.
func (t table) paddleStart(p core.PlayerID) core.Vec2 {
	if p == core.Player1 {
		return core.V(t.field.X/2, t.field.Y/6)
	}
	return core.V(t.field.X/2, t.field.Y-t.field.Y/6)
}

// clampPaddle keeps a paddle of radius r on the table and inside its own half,
// leaving the centre dead zone free.
func (t table) clampPaddle(p core.PlayerID, pos core.Vec2, r float64) core.Vec2 {
	x := core.ClampF(pos.X, r, t.field.X-r)
	half := t.field.Y / 2
	var y float64
	if p == core.Player1 {
		y = core.ClampF(pos.Y, r, half-r-t.gap)
	} else {
		y = core.ClampF(pos.Y, half+r+t.gap, t.field.Y-r)
	}
	return core.V(x, y)
}

// clampPuck keeps the puck centre at least one radius from every edge.
func (t table) clampPuck(pos core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(pos.X, t.puckR, t.field.X-t.puckR),
		core.ClampF(pos.Y, t.puckR, t.field.Y-t.puckR),
	)
}

// place puts every entity at its round-start position with zero velocity.
func (t table) place(e *Entities, paddleR float64) {
	e.Puck = Entity{Pos: t.center(), Radius: t.puckR}
	e.Paddle1 = Entity{Pos: t.clampPaddle(core.Player1, t.paddleStart(core.Player1), paddleR), Radius: paddleR}
	e.Paddle2 = Entity{Pos: t.clampPaddle(core.Player2, t.paddleStart(core.Player2), paddleR), Radius: paddleR}
}

// sanitize repairs non-finite or escaped state before a tick runs.
func (t table) sanitize(e *Entities) {
	if !e.Puck.Pos.IsFinite() || !e.Puck.Vel.IsFinite() {
		e.Puck.Pos = t.center()
		e.Puck.Vel = core.Vec2{}
	}
	e.Puck.Pos = t.clampPuck(e.Puck.Pos)

	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		pad := e.paddle(p)
		if !pad.Pos.IsFinite() {
			pad.Pos = t.paddleStart(p)
		}
		pad.Vel = core.Vec2{}
		pad.Pos = t.clampPaddle(p, pad.Pos, pad.Radius)
	}
}

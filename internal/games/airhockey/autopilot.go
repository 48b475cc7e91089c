package airhockey

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Autopilot steers one paddle by producing target points, the same way a
// finger would. It is deterministic for a given seed and snapshot sequence.
type Autopilot struct {
	side  core.PlayerID
	curve *config.SkillCurve
	rng   *rand.Rand
	aim   float64 // Current horizontal aim error
	start time.Time
}

// NewAutopilot creates a driver for side p.
func NewAutopilot(p core.PlayerID, cfg config.AutopilotConfig, seed int64) *Autopilot {
	return &Autopilot{
		side:  p,
		curve: config.NewSkillCurve(cfg),
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec // gameplay randomness
	}
}

// Side returns the half this autopilot plays.
func (a *Autopilot) Side() core.PlayerID {
	return a.side
}

// Next returns where the paddle should move this tick, in table coordinates.
// ok is false when the autopilot has nothing to do (outside play).
func (a *Autopilot) Next(s Snapshot) (target core.Vec2, ok bool) {
	r := s.Round
	if r.Phase != PhasePlaying && r.Phase != PhaseWaiting {
		a.start = time.Time{}
		return core.Vec2{}, false
	}
	if a.start.IsZero() {
		a.start = s.Now
	}

	deficit := r.Points(a.side.Opponent()) - r.Points(a.side)
	level := a.curve.Level(max(deficit, 0), s.Now.Sub(a.start))
	step := a.curve.Step(level)

	// Re-roll the aim error now and then so the CPU is beatable.
	if s.Tick%30 == 0 {
		j := a.curve.Jitter(level)
		a.aim = (a.rng.Float64()*2 - 1) * j
	}

	var pad Entity
	if a.side == core.Player1 {
		pad = s.Entities.Paddle1
	} else {
		pad = s.Entities.Paddle2
	}
	puck := s.Entities.Puck

	// Strike from behind the puck when it is on our side, else guard the goal.
	half := s.Field.Y / 2
	ownSide := (a.side == core.Player1 && puck.Pos.Y < half) || (a.side == core.Player2 && puck.Pos.Y >= half)
	var goal core.Vec2
	if ownSide {
		behind := pad.Radius + puck.Radius*0.5
		if a.side == core.Player1 {
			goal = core.V(puck.Pos.X+a.aim, puck.Pos.Y-behind)
		} else {
			goal = core.V(puck.Pos.X+a.aim, puck.Pos.Y+behind)
		}
		// Already behind it: drive through.
		if (a.side == core.Player1 && pad.Pos.Y < puck.Pos.Y) || (a.side == core.Player2 && pad.Pos.Y > puck.Pos.Y) {
			goal = puck.Pos.Add(core.V(a.aim*0.3, 0))
		}
	} else {
		home := s.Field.Y / 6
		if a.side == core.Player2 {
			home = s.Field.Y - home
		}
		goal = core.V(s.Field.X/2+(puck.Pos.X-s.Field.X/2)*0.5, home)
	}

	delta := goal.Sub(pad.Pos)
	if dist := delta.Len(); dist > step && dist > 0 {
		delta = delta.Scale(step / dist)
	}
	return pad.Pos.Add(delta), true
}

// CPU binds an autopilot to a game so a host can ask it for input without
// knowing about snapshots. The autopilot is built on first use, after Reset
// has loaded the tuning.
type CPU struct {
	g    *Game
	side core.PlayerID
	seed int64
	a    *Autopilot
}

// NewCPU creates a driver for side p of g.
func NewCPU(g *Game, p core.PlayerID, seed int64) *CPU {
	return &CPU{g: g, side: p, seed: seed}
}

// Side returns the half the CPU plays.
func (c *CPU) Side() core.PlayerID {
	return c.side
}

// Drive returns the pointer event for this tick. ok is false when the
// autopilot is disabled in the tuning or has nothing to do.
func (c *CPU) Drive() (ev core.PointerEvent, ok bool) {
	if !c.g.cfg.Autopilot.Enabled {
		return core.PointerEvent{}, false
	}
	if c.a == nil {
		c.a = NewAutopilot(c.side, c.g.cfg.Autopilot, c.seed)
	}
	target, ok := c.a.Next(c.g.Snapshot())
	if !ok {
		return core.PointerEvent{}, false
	}
	return c.g.PointerAt(target), true
}

package airhockey

import (
	"github.com/vovakirdan/duel-arcade/internal/core"
)

// HandlePointer routes every contact of a pointer event to a paddle. Each point
// is mapped to table coordinates, assigned to the half it lands in and clamped
// into that half. The first contact while waiting starts play within the same
// call. Events are ignored while configuring, scoring or after game over.
func (g *Game) HandlePointer(ev core.PointerEvent) {
	if g.round.Phase != PhaseWaiting && g.round.Phase != PhasePlaying {
		return
	}
	if len(ev.Points) == 0 {
		return
	}

	moved := false
	for _, pt := range ev.Points {
		pos, ok := ev.ToLogical(pt)
		if !ok {
			return
		}
		pos = core.V(
			core.ClampF(pos.X, 0, g.table.field.X),
			core.ClampF(pos.Y, 0, g.table.field.Y),
		)

		side := g.table.side(pos.Y)
		pad := g.ents.paddle(side)
		pad.Pos = g.table.clampPaddle(side, pos, pad.Radius)
		moved = true
	}

	if moved {
		g.round.Begin(g.now())
	}
}

// PointerAt builds an event for points already in table coordinates. Keyboard
// and autopilot input use it so the router stays the only paddle writer.
func (g *Game) PointerAt(points ...core.Vec2) core.PointerEvent {
	ev := core.PointerEvent{
		Surface: core.IdentitySurface(g.table.field),
		Logical: g.table.field,
		Points:  make([]core.Point, 0, len(points)),
	}
	for _, p := range points {
		ev.Points = append(ev.Points, core.Point{ClientX: p.X, ClientY: p.Y})
	}
	return ev
}

// PaddlePos returns where side p's paddle currently is.
func (g *Game) PaddlePos(p core.PlayerID) core.Vec2 {
	if pad := g.ents.paddle(p); pad != nil {
		return pad.Pos
	}
	return core.Vec2{}
}

package airhockey

import (
	"math"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// stepResult reports what one physics tick produced.
type stepResult struct {
	scorer core.PlayerID // Side credited with a goal, NoPlayer if none
	cues   []core.Cue
}

// step advances the puck by one tick: integrate, damp, cap, resolve the goal
// lines and walls, then the paddles. A goal ends the tick before any paddle
// contact is considered.
func (t table) step(e *Entities) stepResult {
	var res stepResult
	puck := &e.Puck

	puck.Pos = puck.Pos.Add(puck.Vel)
	puck.Vel = puck.Vel.Scale(t.phys.Damping)
	puck.Vel = capSpeed(puck.Vel, t.phys.MaxSpeed)
	// Both paddles hit back with the capped speed, not the bounced or already
	// boosted one.
	speed := puck.Vel.Len()

	if scorer := t.goalCrossing(puck); scorer != core.NoPlayer {
		res.scorer = scorer
		res.cues = append(res.cues, core.CueGoal)
		return res
	}

	if t.bounceWalls(puck) {
		res.cues = append(res.cues, core.CueWall)
	}

	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if collide(puck, e.paddle(p), p, speed, t.phys.ImpulseBonus) {
			res.cues = append(res.cues, core.CueHit)
		}
	}

	t.keepOnTable(e)
	return res
}

// keepOnTable clamps the puck to the table after the paddles pushed it. When
// the clamp drags it back into a paddle against one wall, the puck slides
// along that wall until the two just touch. In a corner the table bounds win.
func (t table) keepOnTable(e *Entities) {
	puck := &e.Puck
	pos := t.clampPuck(puck.Pos)
	pinnedX, pinnedY := pos.X != puck.Pos.X, pos.Y != puck.Pos.Y
	puck.Pos = pos
	if pinnedX == pinnedY {
		return
	}

	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		pad := e.paddle(p)
		minDist := puck.Radius + pad.Radius
		if puck.Pos.Dist(pad.Pos) >= minDist {
			continue
		}
		if pinnedX {
			dx := puck.Pos.X - pad.Pos.X
			dy := math.Sqrt(minDist*minDist-dx*dx) + slideMargin
			dir := math.Copysign(1, puck.Pos.Y-pad.Pos.Y)
			if puck.Pos.Y == pad.Pos.Y {
				dir = towardOpponent(p)
			}
			puck.Pos.Y = pad.Pos.Y + dir*dy
		} else {
			dy := puck.Pos.Y - pad.Pos.Y
			dx := math.Sqrt(minDist*minDist-dy*dy) + slideMargin
			dir := math.Copysign(1, puck.Pos.X-pad.Pos.X)
			if puck.Pos.X == pad.Pos.X {
				dir = math.Copysign(1, t.field.X/2-pad.Pos.X)
			}
			puck.Pos.X = pad.Pos.X + dir*dx
		}
		puck.Pos = t.clampPuck(puck.Pos)
	}
}

// slideMargin keeps a slid puck strictly clear of the paddle it left.
const slideMargin = 1e-6

// towardOpponent is the y direction from a side's half to the other.
func towardOpponent(p core.PlayerID) float64 {
	if p == core.Player2 {
		return -1
	}
	return 1
}

// capSpeed rescales v to max while preserving direction.
func capSpeed(v core.Vec2, max float64) core.Vec2 {
	speed := v.Len()
	if speed > max && speed > 0 {
		return v.Scale(max / speed)
	}
	return v
}

// goalCrossing detects a puck reaching the top or bottom edge inside the goal
// mouth. The top goal belongs to player 1, so crossing it scores for player 2.
// On a goal the puck is parked on the line and stopped.
func (t table) goalCrossing(puck *Entity) core.PlayerID {
	if !t.inGoal(puck.Pos.X) {
		return core.NoPlayer
	}

	var scorer core.PlayerID
	switch {
	case puck.Pos.Y-t.puckR <= 0:
		scorer = core.Player2
	case puck.Pos.Y+t.puckR >= t.field.Y:
		scorer = core.Player1
	default:
		return core.NoPlayer
	}

	puck.Pos = t.clampPuck(puck.Pos)
	puck.Vel = core.Vec2{}
	return scorer
}

// bounceWalls clamps the puck inside the side walls and the solid parts of the
// goal lines, reflecting velocity with restitution.
func (t table) bounceWalls(puck *Entity) bool {
	bounced := false
	r := t.puckR
	rest := t.phys.Restitution

	if puck.Pos.X-r <= 0 {
		puck.Pos.X = r
		puck.Vel.X = -puck.Vel.X * rest
		bounced = true
	} else if puck.Pos.X+r >= t.field.X {
		puck.Pos.X = t.field.X - r
		puck.Vel.X = -puck.Vel.X * rest
		bounced = true
	}

	if puck.Pos.Y-r <= 0 {
		puck.Pos.Y = r
		puck.Vel.Y = -puck.Vel.Y * rest
		bounced = true
	} else if puck.Pos.Y+r >= t.field.Y {
		puck.Pos.Y = t.field.Y - r
		puck.Vel.Y = -puck.Vel.Y * rest
		bounced = true
	}

	return bounced
}

// collide resolves puck against one paddle. On overlap the puck is pushed out
// along the normal to exactly touching and sent along it at speed plus bonus.
// Concentric bodies push toward the opponent's half.
func collide(puck, paddle *Entity, side core.PlayerID, speed, bonus float64) bool {
	minDist := puck.Radius + paddle.Radius
	delta := puck.Pos.Sub(paddle.Pos)
	dist := delta.Len()
	if dist >= minDist {
		return false
	}

	normal := core.V(0, towardOpponent(side))
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}

	puck.Pos = paddle.Pos.Add(normal.Scale(minDist))
	puck.Vel = normal.Scale(speed + bonus)
	return true
}

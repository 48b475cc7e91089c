package airhockey

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Snapshot is a value copy of everything a frame depends on. Render passes and
// tests read snapshots so they can never write back into the game.
type Snapshot struct {
	Tick     uint64
	Field    core.Vec2
	GoalSpan [2]float64
	Entities Entities
	Round    Round

	EscalationPoints int

	// Configuration screen state
	Cursor       int
	TargetOption int
	PaddleOption string

	Now time.Time
}

// Snapshot returns the current state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	lo, hi := g.table.goalSpan()
	return Snapshot{
		Tick:     g.tick,
		Field:    g.table.field,
		GoalSpan: [2]float64{lo, hi},
		Entities: g.ents,
		Round:    g.round,

		EscalationPoints: g.cfg.Round.EscalationPoints,

		Cursor:       g.cursor,
		TargetOption: g.target(),
		PaddleOption: g.cfg.Round.PaddleSizes[g.paddleIdx].Name,

		Now: g.now(),
	}
}

// Hash fingerprints the simulation state. Equal hashes after equal inputs are
// how determinism is checked; Now is excluded since it is an input.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(v float64) { putU(math.Float64bits(v)) }
	putI := func(v int) { putU(uint64(int64(v))) } //nolint:gosec // bit pattern only
	putT := func(t time.Time) {
		putI(int(t.Unix()))
		putI(t.Nanosecond())
	}

	putU(s.Tick)
	for _, e := range []Entity{s.Entities.Puck, s.Entities.Paddle1, s.Entities.Paddle2} {
		putF(e.Pos.X)
		putF(e.Pos.Y)
		putF(e.Vel.X)
		putF(e.Vel.Y)
		putF(e.Radius)
	}

	r := s.Round
	putI(int(r.Phase))
	putI(r.Score1)
	putI(r.Score2)
	putI(r.Target)
	putF(r.PaddleRadius)
	if r.Escalated {
		putU(1)
	} else {
		putU(0)
	}
	putT(r.EscalationStart)
	putI(int(r.LastScorer))
	putI(r.LastAward)
	putT(r.PauseUntil)
	putI(int(r.Winner))

	return h.Sum64()
}

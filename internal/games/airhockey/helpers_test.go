package airhockey

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
)

const frame = 16 * time.Millisecond

var epoch = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

type outcomeLog struct {
	outcomes []core.Outcome
}

func (l *outcomeLog) RecordOutcome(o core.Outcome) {
	l.outcomes = append(l.outcomes, o)
}

type harness struct {
	t     *testing.T
	g     *Game
	clock *engine.FakeClock
	log   *outcomeLog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		g:     New(),
		clock: engine.NewFakeClock(epoch),
		log:   &outcomeLog{},
	}
	h.g.ResetWith(core.RuntimeConfig{Clock: h.clock, Outcomes: h.log, Seed: 1}, config.DefaultHockeyConfig())
	return h
}

// play starts a round and touches player 1's half so physics runs.
func (h *harness) play() *harness {
	h.t.Helper()
	h.g.HandleAction(core.ActionConfirm)
	h.g.HandlePointer(h.g.PointerAt(core.V(160, 80)))
	if h.g.Phase() != PhasePlaying {
		h.t.Fatalf("phase = %v, expected playing", h.g.Phase())
	}
	return h
}

// step advances the clock by d and runs one tick.
func (h *harness) step(d time.Duration) core.StepResult {
	h.clock.Advance(d)
	return h.g.Step(h.clock.Now())
}

// goal places the puck on the scoring edge and ticks once. scorer is the
// side that should be credited.
func (h *harness) goal(scorer core.PlayerID) core.StepResult {
	h.t.Helper()
	field := h.g.Field()
	puck := &h.g.ents.Puck
	if scorer == core.Player1 {
		puck.Pos = core.V(field.X/2, field.Y-puck.Radius-1)
		puck.Vel = core.V(0, 5)
	} else {
		puck.Pos = core.V(field.X/2, puck.Radius+1)
		puck.Vel = core.V(0, -5)
	}
	res := h.step(frame)
	if h.g.Phase() != PhaseScoring {
		h.t.Fatalf("goal for P%d did not enter scoring, phase = %v", scorer, h.g.Phase())
	}
	return res
}

// finishPause runs the clock past the scoring pause and ticks once.
func (h *harness) finishPause() core.StepResult {
	h.t.Helper()
	return h.step(config.DefaultHockeyConfig().Round.Pause())
}

func hasCue(cues []core.Cue, c core.Cue) bool {
	for _, got := range cues {
		if got == c {
			return true
		}
	}
	return false
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

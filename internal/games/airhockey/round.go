package airhockey

import (
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseConfiguring Phase = iota // Choosing target score and paddle size
	PhaseWaiting                  // Table set, waiting for the first touch
	PhasePlaying                  // Physics running
	PhaseScoring                  // Post-goal pause
	PhaseGameOver                 // Winner declared
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseConfiguring:
		return "configuring"
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Round is one play-to-target session. Transitions are methods that report
// whether they fired; a call that does not fit the current phase changes nothing.
type Round struct {
	Phase  Phase
	Score1 int
	Score2 int

	Target       int
	PaddleRadius float64

	Escalated       bool
	EscalationStart time.Time

	LastScorer core.PlayerID
	LastAward  int
	PauseUntil time.Time
	Winner     core.PlayerID
}

// newRound returns a round in the configuring phase.
func newRound(target int, paddleR float64) Round {
	return Round{
		Phase:        PhaseConfiguring,
		Target:       target,
		PaddleRadius: paddleR,
	}
}

// Configure changes the pre-round options. Locked outside configuring.
func (r *Round) Configure(target int, paddleR float64) bool {
	if r.Phase != PhaseConfiguring {
		return false
	}
	r.Target = target
	r.PaddleRadius = paddleR
	return true
}

// Start moves configuring to waiting.
func (r *Round) Start() bool {
	if r.Phase != PhaseConfiguring {
		return false
	}
	r.Phase = PhaseWaiting
	return true
}

// Begin moves waiting to playing on the first touch.
func (r *Round) Begin(now time.Time) bool {
	if r.Phase != PhaseWaiting {
		return false
	}
	r.Phase = PhasePlaying
	r.resetEscalation(now)
	return true
}

// CheckEscalation switches fire mode on once the idle period since the last
// score event has been exceeded. It reports whether fire mode just started.
func (r *Round) CheckEscalation(now time.Time, after time.Duration) bool {
	if r.Phase != PhasePlaying || r.Escalated {
		return false
	}
	if now.Sub(r.EscalationStart) > after {
		r.Escalated = true
		return true
	}
	return false
}

// Score awards a goal to scorer and starts the pause. The award is
// escalationPoints while fire mode is on, else 1.
func (r *Round) Score(scorer core.PlayerID, now time.Time, pause time.Duration, escalationPoints int) bool {
	if r.Phase != PhasePlaying || (scorer != core.Player1 && scorer != core.Player2) {
		return false
	}

	award := 1
	if r.Escalated {
		award = escalationPoints
	}
	if scorer == core.Player1 {
		r.Score1 += award
	} else {
		r.Score2 += award
	}

	r.LastScorer = scorer
	r.LastAward = award
	r.Phase = PhaseScoring
	r.PauseUntil = now.Add(pause)
	r.resetEscalation(now)
	return true
}

// Resume ends the pause once it has elapsed: gameOver if a side reached the
// target, playing otherwise. It reports whether the phase changed.
func (r *Round) Resume(now time.Time) bool {
	if r.Phase != PhaseScoring || now.Before(r.PauseUntil) {
		return false
	}

	if winner := r.leader(); winner != core.NoPlayer {
		r.Phase = PhaseGameOver
		r.Winner = winner
		return true
	}

	r.Phase = PhasePlaying
	r.resetEscalation(now)
	return true
}

// Restart returns a finished round to configuring with scores zeroed.
// Options chosen for the previous round carry over.
func (r *Round) Restart() bool {
	if r.Phase != PhaseGameOver {
		return false
	}
	*r = newRound(r.Target, r.PaddleRadius)
	return true
}

// leader returns the side whose score reached the target.
func (r *Round) leader() core.PlayerID {
	switch {
	case r.Score1 >= r.Target:
		return core.Player1
	case r.Score2 >= r.Target:
		return core.Player2
	default:
		return core.NoPlayer
	}
}

func (r *Round) resetEscalation(now time.Time) {
	r.Escalated = false
	r.EscalationStart = now
}

// Points returns the score of side p.
func (r *Round) Points(p core.PlayerID) int {
	switch p {
	case core.Player1:
		return r.Score1
	case core.Player2:
		return r.Score2
	default:
		return 0
	}
}

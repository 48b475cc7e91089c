package core

// Rank tells the stats store how to order single-player scores.
type Rank string

const (
	RankHigh Rank = "high" // Larger is better (points)
	RankLow  Rank = "low"  // Smaller is better (moves, seconds)
)

// Outcome is emitted once per completed round to the persistence bridge.
// Two-player titles fill Winner and the per-side scores; single-player titles
// fill Score and Rank and leave Winner as NoPlayer.
type Outcome struct {
	GameID string
	Winner PlayerID
	Score1 int
	Score2 int

	Score int
	Rank  Rank
}

// TwoPlayer reports whether the outcome declares a winning side.
func (o Outcome) TwoPlayer() bool {
	return o.Winner == Player1 || o.Winner == Player2
}

// OutcomeRecorder is the persistence bridge consumed by games.
// Implementations must not block the caller and must swallow their own errors.
type OutcomeRecorder interface {
	RecordOutcome(o Outcome)
}

// Cue is a fire-and-forget feedback event (audio, haptics).
type Cue int

const (
	CueNone       Cue = iota
	CueHit            // Paddle struck the puck
	CueWall           // Puck bounced off a wall
	CueGoal           // A score event fired
	CueEscalation     // Fire mode switched on
	CuePass           // Bomb changed hands
	CueGameOver       // Terminal state reached
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueWall:
		return "wall"
	case CueGoal:
		return "goal"
	case CueEscalation:
		return "escalation"
	case CuePass:
		return "pass"
	case CueGameOver:
		return "game-over"
	default:
		return "none"
	}
}

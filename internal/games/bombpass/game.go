// Package bombpass implements a hot-potato duel on one shared surface. A bomb
// with a hidden fuse starts with a random player; whoever holds it taps their
// own half to hand it over. The holder when the fuse runs out loses.
package bombpass

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

// ID is the registry and stats key for this title.
const ID = "bombpass"

// Phase is the round lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseExploded
)

// String returns the phase name used in GameState.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// Game holds one bomb and two players. Like every title it is owned by a
// single goroutine.
type Game struct {
	cfg      config.BombPassConfig
	clock    core.Clock
	outcomes core.OutcomeRecorder
	rng      *rand.Rand

	phase     Phase
	holder    core.PlayerID
	fuse      time.Duration
	explodeAt time.Time
	winner    core.PlayerID
	passes    int

	pending  []core.Cue // Cues raised by input, flushed on the next Step
	reported bool
}

// New creates a Bomb Pass game with default tuning.
func New() *Game {
	return &Game{
		cfg:   config.DefaultBombPassConfig(),
		clock: core.SystemClock{},
		rng:   engine.NewRand(0),
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Bomb Pass"
}

// Players returns the number of local players.
func (g *Game) Players() int {
	return 2
}

// Reset loads tuning and returns to the idle screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBombPass(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultBombPassConfig()
	}
	g.ResetWith(runtime, cfg)
}

// ResetWith is Reset with explicit tuning. Invalid tuning falls back to the
// defaults.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BombPassConfig) {
	if cfg.Validate() != nil {
		cfg = config.DefaultBombPassConfig()
	}
	g.cfg = cfg
	g.clock = runtime.Clock
	if g.clock == nil {
		g.clock = core.SystemClock{}
	}
	g.outcomes = runtime.Outcomes
	g.rng = engine.NewRand(runtime.Seed)
	g.idle()
}

func (g *Game) idle() {
	g.phase = PhaseIdle
	g.holder = core.NoPlayer
	g.fuse = 0
	g.explodeAt = time.Time{}
	g.winner = core.NoPlayer
	g.passes = 0
	g.pending = nil
	g.reported = false
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Holder returns who has the bomb, NoPlayer while idle.
func (g *Game) Holder() core.PlayerID {
	return g.holder
}

// Winner returns the survivor once the bomb has exploded.
func (g *Game) Winner() core.PlayerID {
	return g.winner
}

// Passes returns how many times the bomb changed hands this round.
func (g *Game) Passes() int {
	return g.passes
}

// ExplodeAt returns when the current fuse runs out.
func (g *Game) ExplodeAt() time.Time {
	return g.explodeAt
}

// Field returns the logical surface pointer events are mapped onto.
func (g *Game) Field() core.Vec2 {
	return core.V(g.cfg.Field.Width, g.cfg.Field.Height)
}

// Remaining returns the fuse left at now, never negative.
func (g *Game) Remaining(now time.Time) time.Duration {
	if g.phase != PhasePlaying {
		return 0
	}
	if d := g.explodeAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// HandleAction applies a shell action. Confirm lights the fuse from idle and
// returns to idle after an explosion; Restart does the latter only.
func (g *Game) HandleAction(a core.Action) {
	switch g.phase {
	case PhaseIdle:
		if a == core.ActionConfirm {
			g.Start()
		}
	case PhaseExploded:
		if a == core.ActionRestart || a == core.ActionConfirm {
			g.Restart()
		}
	}
}

// Start hands the bomb to a random player and lights a fuse of uniform length
// between the configured bounds. Valid only while idle.
func (g *Game) Start() bool {
	if g.phase != PhaseIdle {
		return false
	}
	g.holder = core.Player1
	if g.rng.Intn(2) == 1 {
		g.holder = core.Player2
	}
	lo, hi := g.cfg.Fuse.Min(), g.cfg.Fuse.Max()
	g.fuse = lo + time.Duration(g.rng.Float64()*float64(hi-lo))
	g.explodeAt = g.clock.Now().Add(g.fuse)
	g.phase = PhasePlaying
	return true
}

// Restart clears an exploded round back to idle.
func (g *Game) Restart() bool {
	if g.phase != PhaseExploded {
		return false
	}
	g.idle()
	return true
}

// HandlePointer passes the bomb when the holder touches their own half. Touches
// by the other player are ignored, and one event passes the bomb at most once.
func (g *Game) HandlePointer(ev core.PointerEvent) {
	if g.phase != PhasePlaying {
		return
	}
	field := g.Field()
	for _, pt := range ev.Points {
		pos, ok := ev.ToLogical(pt)
		if !ok {
			return
		}
		side := core.Player2
		if core.ClampF(pos.Y, 0, field.Y) < field.Y/2 {
			side = core.Player1
		}
		if side == g.holder {
			g.pass()
			return
		}
	}
}

// Pass hands the bomb over on behalf of p, as a tap in p's half would.
func (g *Game) Pass(p core.PlayerID) bool {
	if g.phase != PhasePlaying || p != g.holder {
		return false
	}
	g.pass()
	return true
}

func (g *Game) pass() {
	g.holder = g.holder.Opponent()
	g.passes++
	g.pending = append(g.pending, core.CuePass)
}

// Step checks the fuse at time now.
func (g *Game) Step(now time.Time) core.StepResult {
	cues := g.pending
	g.pending = nil

	if g.phase == PhasePlaying && !now.Before(g.explodeAt) {
		g.phase = PhaseExploded
		g.winner = g.holder.Opponent()
		cues = append(cues, core.CueGameOver)
		g.report()
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

func (g *Game) report() {
	if g.reported {
		return
	}
	g.reported = true
	if g.outcomes == nil {
		return
	}
	o := core.Outcome{GameID: ID, Winner: g.winner}
	if g.winner == core.Player1 {
		o.Score1 = 1
	} else {
		o.Score2 = 1
	}
	g.outcomes.RecordOutcome(o)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Phase:    g.phase.String(),
		GameOver: g.phase == PhaseExploded,
		Winner:   g.winner,
	}
	switch g.winner {
	case core.Player1:
		st.Score1 = 1
	case core.Player2:
		st.Score2 = 1
	}
	return st
}

// Package airhockey implements a two-player air hockey table for one shared
// surface. Player 1 defends the top goal, player 2 the bottom one; each moves
// a paddle by touching their own half of the table.
package airhockey

import (
	"time"

	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

// ID is the registry and stats key for this title.
const ID = "hockey"

// Options rows on the configuration screen.
const (
	rowTarget = iota
	rowPaddle
	rowCount
)

// Game owns the entity store and the round. It is driven from a single
// goroutine: HandlePointer, HandleAction and Step must not run concurrently.
type Game struct {
	cfg      config.HockeyConfig
	runtime  core.RuntimeConfig
	clock    core.Clock
	outcomes core.OutcomeRecorder

	table table
	ents  Entities
	round Round

	targetIdx int
	paddleIdx int
	cursor    int

	tick     uint64
	reported bool
}

// New creates an air hockey game with default tuning.
func New() *Game {
	g := &Game{clock: core.SystemClock{}}
	g.configure(config.DefaultHockeyConfig())
	return g
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
	return "Air Hockey"
}

// Players returns the number of local players.
func (g *Game) Players() int {
	return 2
}

// Reset loads tuning and returns to the configuration screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadHockey(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultHockeyConfig()
	}
	g.ResetWith(runtime, cfg)
}

// ResetWith is Reset with explicit tuning, skipping the file search.
// Invalid tuning falls back to the defaults.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.HockeyConfig) {
	if cfg.Validate() != nil {
		cfg = config.DefaultHockeyConfig()
	}
	g.runtime = runtime
	g.clock = runtime.Clock
	if g.clock == nil {
		g.clock = core.SystemClock{}
	}
	g.outcomes = runtime.Outcomes
	g.configure(cfg)
}

func (g *Game) configure(cfg config.HockeyConfig) {
	g.cfg = cfg
	g.table = newTable(cfg)
	g.targetIdx = cfg.Round.TargetIndex()
	g.paddleIdx = cfg.Round.PaddleIndex()
	g.cursor = rowTarget
	g.tick = 0
	g.newRound()
}

// newRound discards the current round and centres every entity.
func (g *Game) newRound() {
	g.round = newRound(g.target(), g.paddleRadius())
	g.table.place(&g.ents, g.round.PaddleRadius)
	g.reported = false
}

func (g *Game) target() int {
	return g.cfg.Round.TargetScores[g.targetIdx]
}

func (g *Game) paddleRadius() float64 {
	return g.cfg.Round.PaddleSizes[g.paddleIdx].Radius
}

// Field returns the logical table size pointer events must be mapped onto.
func (g *Game) Field() core.Vec2 {
	return g.table.field
}

// Round returns a copy of the round state.
func (g *Game) Round() Round {
	return g.round
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.round.Phase
}

// SetTarget selects the target score. Only valid while configuring and only
// for one of the configured options.
func (g *Game) SetTarget(target int) bool {
	if g.round.Phase != PhaseConfiguring {
		return false
	}
	for i, t := range g.cfg.Round.TargetScores {
		if t == target {
			g.targetIdx = i
			return g.applyOptions()
		}
	}
	return false
}

// SetPaddle selects a paddle size by name under the same rules as SetTarget.
func (g *Game) SetPaddle(name string) bool {
	if g.round.Phase != PhaseConfiguring {
		return false
	}
	for i, p := range g.cfg.Round.PaddleSizes {
		if p.Name == name {
			g.paddleIdx = i
			return g.applyOptions()
		}
	}
	return false
}

func (g *Game) applyOptions() bool {
	if !g.round.Configure(g.target(), g.paddleRadius()) {
		return false
	}
	g.table.place(&g.ents, g.round.PaddleRadius)
	return true
}

// HandleAction applies a shell action. Actions that do not fit the current
// phase are ignored.
func (g *Game) HandleAction(a core.Action) {
	switch g.round.Phase {
	case PhaseConfiguring:
		g.handleConfigAction(a)
	case PhaseGameOver:
		if a == core.ActionRestart || a == core.ActionConfirm {
			g.Restart()
		}
	}
}

func (g *Game) handleConfigAction(a core.Action) {
	switch a {
	case core.ActionUp:
		g.cursor = (g.cursor + rowCount - 1) % rowCount
	case core.ActionDown:
		g.cursor = (g.cursor + 1) % rowCount
	case core.ActionLeft, core.ActionRight:
		delta := 1
		if a == core.ActionLeft {
			delta = -1
		}
		if g.cursor == rowTarget {
			n := len(g.cfg.Round.TargetScores)
			g.targetIdx = (g.targetIdx + delta + n) % n
		} else {
			n := len(g.cfg.Round.PaddleSizes)
			g.paddleIdx = (g.paddleIdx + delta + n) % n
		}
		g.applyOptions()
	case core.ActionConfirm:
		g.Start()
	}
}

// Start locks the options and sets the table. Valid only while configuring.
func (g *Game) Start() bool {
	if !g.round.Start() {
		return false
	}
	g.table.place(&g.ents, g.round.PaddleRadius)
	return true
}

// Restart returns a finished game to the configuration screen with scores
// zeroed and entities centred.
func (g *Game) Restart() bool {
	if !g.round.Restart() {
		return false
	}
	g.table.place(&g.ents, g.round.PaddleRadius)
	g.reported = false
	g.cursor = rowTarget
	return true
}

// Step advances the simulation by one tick at time now.
func (g *Game) Step(now time.Time) core.StepResult {
	g.tick++
	var cues []core.Cue

	g.table.sanitize(&g.ents)

	switch g.round.Phase {
	case PhasePlaying:
		if g.round.CheckEscalation(now, g.cfg.Round.EscalationAfter()) {
			cues = append(cues, core.CueEscalation)
		}
		res := g.table.step(&g.ents)
		cues = append(cues, res.cues...)
		if res.scorer != core.NoPlayer {
			g.round.Score(res.scorer, now, g.cfg.Round.Pause(), g.cfg.Round.EscalationPoints)
		}

	case PhaseScoring:
		if g.round.Resume(now) {
			if g.round.Phase == PhaseGameOver {
				cues = append(cues, core.CueGameOver)
				g.report()
			} else {
				g.ents.Puck = Entity{Pos: g.table.center(), Radius: g.table.puckR}
			}
		}
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

// report hands the result to the persistence bridge once per round.
func (g *Game) report() {
	if g.reported {
		return
	}
	g.reported = true
	if g.outcomes == nil {
		return
	}
	g.outcomes.RecordOutcome(core.Outcome{
		GameID: ID,
		Winner: g.round.Winner,
		Score1: g.round.Score1,
		Score2: g.round.Score2,
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.round.Phase.String(),
		Score1:   g.round.Score1,
		Score2:   g.round.Score2,
		GameOver: g.round.Phase == PhaseGameOver,
		Winner:   g.round.Winner,
	}
}

func (g *Game) now() time.Time {
	return g.clock.Now()
}

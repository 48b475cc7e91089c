package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duel-arcade/internal/games/airhockey"
	"github.com/vovakirdan/duel-arcade/internal/platform/tui"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

var (
	flagTarget int
	flagPaddle string
	flagCPU    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse        - Drag a paddle / tap your half
  W/A/S/D      - Player 1 (top)
  Arrows       - Player 2 (bottom)
  Enter/Space  - Start
  R            - Restart (after game over)
  M            - Toggle sound
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots
  Esc          - Back
  Q/Ctrl+C     - Quit

Air hockey options (preselected on the setup screen):
  --target 3|5|10           Goals needed to win
  --paddle small|medium|large
  --cpu p1|p2               Let the computer play one side

Examples:
  arcade play hockey
  arcade play hockey --target 3 --paddle large
  arcade play hockey --cpu p2
  arcade play bombpass
  arcade play hockey --config ./my-hockey.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagTarget, "target", 0, "Air hockey target score (3, 5 or 10)")
	playCmd.Flags().StringVar(&flagPaddle, "paddle", "", "Air hockey paddle size (small, medium, large)")
	playCmd.Flags().StringVar(&flagCPU, "cpu", "", "Computer-controlled side (p1 or p2)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}
	side, err := parseSide(flagCPU)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	h := openHost(true)
	defer h.Close()

	restore := toLogFile()
	defer restore()

	cfg := runtimeConfig(h.outcomes())
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	var cpu tui.Driver
	if f := cpuFactory(side); f != nil {
		cpu = f(game, cfg.Seed)
	}

	err = tui.Run(game, tui.RunnerOptions{
		Config:  cfg,
		Sound:   h.sound,
		CPU:     cpu,
		Prepare: applyHockeyOptions,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// applyHockeyOptions preselects --target and --paddle. Values the tuning file
// does not offer are logged and left at their defaults.
func applyHockeyOptions(g registry.Game) {
	hg, ok := g.(*airhockey.Game)
	if !ok {
		return
	}
	if flagTarget != 0 && !hg.SetTarget(flagTarget) {
		logger.Warn("target score not offered, keeping default", "target", flagTarget)
	}
	if flagPaddle != "" && !hg.SetPaddle(flagPaddle) {
		logger.Warn("paddle size not offered, keeping default", "paddle", flagPaddle)
	}
}

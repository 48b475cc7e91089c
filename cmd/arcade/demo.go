package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
	"github.com/vovakirdan/duel-arcade/internal/games/airhockey"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

var (
	flagDemoSeconds  int
	flagDemoPNG      string
	flagDemoNoRecord bool
)

var demoCmd = &cobra.Command{
	Use:   "demo <game>",
	Short: "Run a headless CPU vs CPU match",
	Long: `Let two autopilots play a match without a terminal UI. The simulation
runs on a virtual clock as fast as the machine allows, so a full match
takes a fraction of a second. The same --seed always replays the same match.

Examples:
  arcade demo hockey
  arcade demo hockey --seed 42 --png final.png
  arcade demo hockey --seconds 60 --no-record`,
	Args: cobra.ExactArgs(1),
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoSeconds, "seconds", 300, "Simulated time limit in seconds")
	demoCmd.Flags().StringVar(&flagDemoPNG, "png", "", "Write the final table to this PNG file")
	demoCmd.Flags().BoolVar(&flagDemoNoRecord, "no-record", false, "Do not store the outcome")
}

func runDemo(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	g, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	hg, ok := g.(*airhockey.Game)
	if !ok {
		return fmt.Errorf("%s has no autopilot to run a demo with", gameID)
	}

	var outcomes core.OutcomeRecorder
	if !flagDemoNoRecord {
		h := openHost(false)
		defer h.Close()
		outcomes = h.outcomes()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := engine.NewFakeClock(time.Now())
	cfg := runtimeConfig(outcomes)
	cfg.Seed = seed
	cfg.Clock = clock
	hg.Reset(cfg)
	applyHockeyOptions(hg)

	cpus := []*airhockey.CPU{
		airhockey.NewCPU(hg, core.Player1, seed),
		airhockey.NewCPU(hg, core.Player2, seed+1),
	}

	tickRate := max(flagFPS, 1)
	var loop *engine.Loop
	var final core.StepResult
	loop = engine.NewLoop(hg, engine.LoopConfig{
		TickRate: tickRate,
		Virtual:  clock,
		MaxTicks: uint64(flagDemoSeconds * tickRate),
		OnFrame: func(tick uint64, res core.StepResult) bool {
			final = res
			for _, c := range res.Cues {
				logger.Debug("cue", "tick", tick, "cue", c.String(), "score", fmt.Sprintf("%d:%d", res.State.Score1, res.State.Score2))
			}
			if res.State.GameOver {
				return false
			}
			for _, cpu := range cpus {
				if ev, ok := cpu.Drive(); ok {
					loop.SendPointer(ev)
				}
			}
			return true
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Confirm the default options, then let the autopilots touch first.
	loop.SendAction(core.ActionConfirm)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	elapsed := time.Duration(loop.Ticks()) * time.Second / time.Duration(tickRate)
	logger.Info("demo finished", "game", gameID, "seed", seed, "ticks", loop.Ticks(), "simulated", elapsed)

	st := final.State
	switch {
	case st.GameOver:
		fmt.Printf("Player %d wins %d : %d after %s (seed %d)\n", st.Winner, st.Score1, st.Score2, elapsed, seed)
	default:
		fmt.Printf("No winner after %s: %d : %d (seed %d)\n", elapsed, st.Score1, st.Score2, seed)
	}

	if flagDemoPNG != "" {
		f, err := os.Create(flagDemoPNG)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagDemoPNG, err)
		}
		defer f.Close()
		if err := airhockey.WritePNG(f, hg.RenderImage(2)); err != nil {
			return fmt.Errorf("writing %s: %w", flagDemoPNG, err)
		}
		fmt.Printf("Final table written to %s\n", flagDemoPNG)
	}

	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duel-arcade/internal/platform/tui"
)

var flagMenuCPU string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Esc in a game returns to the menu; Tab opens the stats board.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Stats
  M            - Toggle sound
  Q            - Quit

Examples:
  arcade menu
  arcade menu --cpu p2
  arcade menu --fps 30
  arcade menu --db ./arcade.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuCPU, "cpu", "", "Computer-controlled side in games that support it (p1 or p2)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	side, err := parseSide(flagMenuCPU)
	if err != nil {
		return err
	}

	h := openHost(true)
	defer h.Close()

	restore := toLogFile()
	defer restore()

	err = tui.RunSession(tui.SessionOptions{
		Config: runtimeConfig(h.outcomes()),
		Store:  h.store,
		Sound:  h.sound,
		NewCPU: cpuFactory(side),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}

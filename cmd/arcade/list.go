package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duel-arcade/internal/registry"
	"github.com/vovakirdan/duel-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its stats summary.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	// Stats are a bonus; list works without the database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("listing without stats", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	idW, titleW := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", idW, "ID", titleW, "Title", "Players", "Stats")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", idW, "--", titleW, "-----", "-------", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %-7d  %s\n", idW, g.ID, titleW, g.Title, g.Players, badgeFor(cmd.Context(), store, g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

func badgeFor(ctx context.Context, store *storage.Store, id string) string {
	if store == nil {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st, err := store.Stats(ctx, id)
	if err != nil {
		logger.Debug("no stats", "game", id, "error", err)
		return ""
	}
	return st.Badge()
}

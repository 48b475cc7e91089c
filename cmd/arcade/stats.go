package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/registry"
	"github.com/vovakirdan/duel-arcade/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:     "stats <game>",
	Aliases: []string{"scores"},
	Short:   "Show recorded outcomes for a game",
	Long: `Display the aggregate record and the most recent outcomes for a game.

Examples:
  arcade stats hockey
  arcade stats bombpass --limit 20
  arcade stats hockey --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent outcomes to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete every recorded outcome of the game")
}

func runStats(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening outcomes database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	if flagStatsClear {
		if err := store.Clear(ctx, gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all outcomes of %s.\n", game.Title())
		return nil
	}

	st, err := store.Stats(ctx, gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Stats - %s\n", game.Title())
	fmt.Println()

	if st.TotalPlayed == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  Played:  %s\n", humanize.Comma(int64(st.TotalPlayed)))
	if st.P1Wins != nil {
		fmt.Printf("  Wins:    P1 %d  -  P2 %d\n", *st.P1Wins, *st.P2Wins)
	}
	if st.HighScore != nil {
		fmt.Printf("  Best:    %s\n", humanize.Comma(int64(*st.HighScore)))
	}
	if st.BestMoves != nil {
		fmt.Printf("  Fewest:  %d moves\n", *st.BestMoves)
	}
	fmt.Printf("  Last:    %s\n", humanize.Time(st.LastPlayed))
	fmt.Println()

	recent, err := store.Recent(ctx, gameID, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("  %-3s  %-6s  %-9s  %s\n", "#", "Winner", "Score", "When")
	fmt.Printf("  %-3s  %-6s  %-9s  %s\n", "-", "------", "-----", "----")
	for i, e := range recent {
		fmt.Printf("  %-3d  %-6s  %-9s  %s\n", i+1, winner(e.Winner), score(e), e.CreatedAt.Format(time.DateTime))
	}

	return nil
}

func winner(p core.PlayerID) string {
	if p == core.NoPlayer {
		return "-"
	}
	return fmt.Sprintf("P%d", p)
}

func score(e storage.Entry) string {
	if e.Winner == core.NoPlayer {
		return humanize.Comma(int64(e.Score))
	}
	return fmt.Sprintf("%d : %d", e.Score1, e.Score2)
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Stats contains aggregated results for a game. Optional fields are nil when
// no outcome of the matching kind was ever recorded.
type Stats struct {
	GameID      string
	TotalPlayed int
	HighScore   *int // Best single-player score ranked high
	BestMoves   *int // Best single-player score ranked low
	P1Wins      *int // Two-player titles only
	P2Wins      *int
	LastPlayed  time.Time
	Last        []Entry
}

// lastN is how many recent outcomes Stats carries.
const lastN = 5

// Stats aggregates every stored outcome of gameID.
func (s *Store) Stats(ctx context.Context, gameID string) (Stats, error) {
	st := Stats{GameID: gameID}

	var (
		twoPlayer  int
		p1, p2     sql.NullInt64
		high, low  sql.NullInt64
		lastPlayed sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COUNT(CASE WHEN winner IN (?, ?) THEN 1 END),
			SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END),
			MAX(CASE WHEN rank = ? THEN score END),
			MIN(CASE WHEN rank = ? THEN score END),
			MAX(created_at)
		 FROM outcomes
		 WHERE game_id = ?`,
		int(core.Player1), int(core.Player2),
		int(core.Player1),
		int(core.Player2),
		string(core.RankHigh),
		string(core.RankLow),
		gameID,
	).Scan(&st.TotalPlayed, &twoPlayer, &p1, &p2, &high, &low, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if twoPlayer > 0 {
		st.P1Wins = intPtr(p1.Int64)
		st.P2Wins = intPtr(p2.Int64)
	}
	if high.Valid {
		st.HighScore = intPtr(high.Int64)
	}
	if low.Valid {
		st.BestMoves = intPtr(low.Int64)
	}
	if lastPlayed.Valid {
		st.LastPlayed = parseTime(lastPlayed.String)
	}

	if st.TotalPlayed > 0 {
		last, err := s.Recent(ctx, gameID, lastN)
		if err != nil {
			return Stats{}, err
		}
		st.Last = last
	}

	return st, nil
}

// Badge is a one-line summary for game lists, empty when nothing was played.
func (st Stats) Badge() string {
	switch {
	case st.P1Wins != nil:
		return fmt.Sprintf("P1 %d : %d P2", *st.P1Wins, *st.P2Wins)
	case st.HighScore != nil:
		return fmt.Sprintf("best %d", *st.HighScore)
	case st.BestMoves != nil:
		return fmt.Sprintf("best %d moves", *st.BestMoves)
	default:
		return ""
	}
}

func intPtr(v int64) *int {
	n := int(v)
	return &n
}

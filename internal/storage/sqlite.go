// Package storage provides SQLite-based persistence for round outcomes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
)

// timeLayout is how created_at is written; it sorts lexically.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for outcome persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one stored round outcome.
type Entry struct {
	ID        string
	GameID    string
	Winner    core.PlayerID
	Score1    int
	Score2    int
	Score     int
	Rank      core.Rank
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS outcomes (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_game_id ON outcomes(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOutcome records one finished round and returns its ID.
func (s *Store) SaveOutcome(ctx context.Context, o core.Outcome) (string, error) {
	if o.GameID == "" {
		return "", fmt.Errorf("storage: outcome without game id")
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (id, game_id, winner, score1, score2, score, rank, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, o.GameID, int(o.Winner), o.Score1, o.Score2, o.Score, string(o.Rank),
		s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save outcome: %w", err)
	}
	return id, nil
}

// sink adapts Store to engine.OutcomeSink.
type sink struct{ s *Store }

func (k sink) SaveOutcome(ctx context.Context, o core.Outcome) error {
	_, err := k.s.SaveOutcome(ctx, o)
	return err
}

// Sink returns the store as the persistence target of an engine.Reporter.
func (s *Store) Sink() engine.OutcomeSink {
	return sink{s: s}
}

// Recent retrieves the latest outcomes for the given game, newest first.
func (s *Store) Recent(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, winner, score1, score2, score, rank, created_at
		 FROM outcomes
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var winner int
		var rank string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &winner, &e.Score1, &e.Score2, &e.Score, &rank, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Winner = core.PlayerID(winner)
		e.Rank = core.Rank(rank)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Clear deletes all outcomes for the given game.
func (s *Store) Clear(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM outcomes WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear outcomes: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values for created_at.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

package core

import (
	"time"
)

// Clock supplies timestamps to games. Every time-gated transition (escalation,
// pauses, fuses) reads it instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// ConfigPath overrides the per-game tuning file search.
	ConfigPath string

	Clock    Clock           // Defaults to SystemClock when nil
	Outcomes OutcomeRecorder // Persistence bridge; nil disables recording
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Now returns the configured clock's time.
func (c RuntimeConfig) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase    string   // Human-readable lifecycle state ("waiting", "playing", ...)
	Score1   int      // Player 1 score (or the solo score)
	Score2   int      // Player 2 score
	GameOver bool     // Whether the round has ended
	Winner   PlayerID // Winner once GameOver, NoPlayer otherwise
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any cues that fired during the tick.
type StepResult struct {
	State GameState
	Cues  []Cue
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
	"github.com/vovakirdan/duel-arcade/internal/games/airhockey"
	"github.com/vovakirdan/duel-arcade/internal/platform/sound"
	"github.com/vovakirdan/duel-arcade/internal/platform/sound/speakerout"
	"github.com/vovakirdan/duel-arcade/internal/platform/tui"
	"github.com/vovakirdan/duel-arcade/internal/registry"
	"github.com/vovakirdan/duel-arcade/internal/storage"
)

// newLogger logs to stderr. Full-screen commands redirect it with toLogFile.
func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "arcade",
	})
}

// toLogFile points the logger at ~/.arcade/arcade.log while the terminal is in
// the alternate screen. The returned func restores stderr.
func toLogFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

// terminalSize returns the stdout terminal size, 80x24 when not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the shared game configuration from the global flags.
func runtimeConfig(outcomes core.OutcomeRecorder) core.RuntimeConfig {
	w, h := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:    w,
		ScreenH:    h,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
	}
	if outcomes != nil {
		cfg.Outcomes = outcomes
	}
	return cfg
}

// host bundles the optional services a game runs with. Every field may be
// nil; the game still works without them.
type host struct {
	store    *storage.Store
	reporter *engine.Reporter
	sound    *sound.Player
}

// openHost opens the outcome store and the audio device. Failures degrade to
// running without that service.
func openHost(withSound bool) *host {
	h := &host{}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open outcomes database", "path", flagDBPath, "error", err)
	} else {
		h.store = store
		h.reporter = engine.NewReporter(store.Sink(), logger)
	}

	if withSound {
		if out, err := speakerout.Open(sound.SampleRate); err != nil {
			h.sound = sound.Degraded(logger, err)
		} else {
			h.sound = sound.NewPlayer(out, 0.8)
		}
		h.sound.SetMuted(flagMute)
	}

	return h
}

// outcomes returns the recorder for RuntimeConfig, nil without a store.
func (h *host) outcomes() core.OutcomeRecorder {
	if h.reporter == nil {
		return nil
	}
	return h.reporter
}

// Close flushes pending outcome writes and closes the store.
func (h *host) Close() {
	h.reporter.Flush()
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			logger.Warn("could not close outcomes database", "error", err)
		}
	}
}

// parseSide maps a --cpu value to the side the computer plays.
func parseSide(s string) (core.PlayerID, error) {
	switch strings.ToLower(s) {
	case "":
		return core.NoPlayer, nil
	case "p1", "1", "top":
		return core.Player1, nil
	case "p2", "2", "bottom":
		return core.Player2, nil
	default:
		return core.NoPlayer, fmt.Errorf("invalid --cpu %q: use p1 or p2", s)
	}
}

// cpuFactory returns a factory for games that have an autopilot. Only air
// hockey does; bomb pass is always two humans.
func cpuFactory(side core.PlayerID) tui.CPUFactory {
	if side == core.NoPlayer {
		return nil
	}
	return func(g registry.Game, seed int64) tui.Driver {
		if hg, ok := g.(*airhockey.Game); ok {
			return airhockey.NewCPU(hg, side, seed)
		}
		return nil
	}
}

// requireGame fails with a hint when id is not registered.
func requireGame(id string) error {
	if registry.Exists(id) {
		return nil
	}
	return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
}

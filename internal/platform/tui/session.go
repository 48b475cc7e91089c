package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/platform/sound"
	"github.com/vovakirdan/duel-arcade/internal/registry"
	"github.com/vovakirdan/duel-arcade/internal/storage"
)

// CPUFactory builds a computer opponent for a freshly reset game. It returns
// nil for games without one.
type CPUFactory func(game registry.Game, seed int64) Driver

// SessionOptions holds everything a session shares across games.
type SessionOptions struct {
	Config core.RuntimeConfig
	Store  *storage.Store // nil disables stats
	Sound  *sound.Player  // nil runs silent
	NewCPU CPUFactory     // nil means two local players only
	Shots  string
	Logger *log.Logger
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewStats
)

// SessionModel manages the full arcade flow: menu -> game -> menu, with Tab
// opening the stats board. Local play and SSH sessions both run it.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	view     view
	menu     MenuModel
	runner   *Runner
	stats    *StatsModel
	lastGame string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = 80, 24
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg).WithMuted(opts.Sound.Muted()),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu quits its own program
// when run alone; inside a session those commands are swallowed.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.opts.Sound.SetMuted(m.menu.Muted())

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsStats():
		stats := NewStatsModel(m.opts.Store, m.menu.Cursor(), m.config.ScreenW, m.config.ScreenH)
		m.stats = &stats
		m.view = viewStats
		return m, stats.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}

	return m, cmd
}

// startGame creates a fresh instance so no state leaks between rounds.
func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("cannot create game", "game", id, "error", err)
		}
		return m.toMenu(), nil
	}

	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	runner := NewRunner(game, RunnerOptions{
		Config: cfg,
		Sound:  m.opts.Sound,
		Shots:  m.opts.Shots,
	})
	if m.opts.NewCPU != nil {
		runner.cpu = m.opts.NewCPU(game, cfg.Seed)
	}

	m.runner = &runner
	m.lastGame = id
	m.view = viewGame
	return m, runner.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runner.Update(msg)
	if r, ok := newModel.(Runner); ok {
		m.runner = &r
	}

	if m.runner.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runner.BackToMenu() {
		// The runner's tick chain stops on its own: it drops ticks once
		// backToMenu is set.
		return m.toMenu(), nil
	}

	return m, cmd
}

// updateStats handles updates when the stats board is open.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if s, ok := newModel.(StatsModel); ok {
		m.stats = &s
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		m.lastGame = m.stats.Selected()
		return m.toMenu(), nil
	}

	return m, cmd
}

// toMenu rebuilds the menu so badges reflect rounds just played.
func (m SessionModel) toMenu() SessionModel {
	m.runner = nil
	m.stats = nil
	m.view = viewMenu
	m.menu = NewMenuModel(m.opts.Store, m.config).
		WithCursor(m.lastGame).
		WithMuted(m.opts.Sound.Muted())
	return m
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.runner.View()
	case viewStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the arcade menu as a local Bubble Tea program.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

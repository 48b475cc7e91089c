package tui

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/platform/sound"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

// keyStep is how far one key press moves a paddle, in field units.
const keyStep = 24.0

// Driver produces pointer input on behalf of a player, e.g. an autopilot.
type Driver interface {
	Drive() (core.PointerEvent, bool)
}

// paddleGame is implemented by games whose pieces the keyboard steers.
type paddleGame interface {
	PaddlePos(p core.PlayerID) core.Vec2
	PointerAt(points ...core.Vec2) core.PointerEvent
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Config core.RuntimeConfig
	Sound  *sound.Player // nil runs silent
	CPU    Driver        // Optional computer opponent
	Shots  string        // Screenshot directory, ~/.arcade/screenshots when empty

	// Prepare runs after the game is reset, before the first tick.
	Prepare func(registry.Game)
}

// Runner is the Bubble Tea model for one running game. It owns the game: every
// input and tick is applied from Update, so the game never needs locking.
type Runner struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	sound   *sound.Player
	cpu     Driver
	keys    *KeyMapper
	shots   string
	gen     uint64
	state   core.GameState
	status  string
	statusT time.Time

	quitting   bool
	backToMenu bool
}

// NewRunner resets game and prepares a model for it.
func NewRunner(game registry.Game, opts RunnerOptions) Runner {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = 80, 24
	}

	game.Reset(cfg)
	if opts.Prepare != nil {
		opts.Prepare(game)
	}

	return Runner{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		sound:  opts.Sound,
		cpu:    opts.CPU,
		keys:   NewKeyMapper(),
		shots:  opts.Shots,
		gen:    nextGen(),
		state:  game.State(),
	}
}

// Init starts the tick loop.
func (m Runner) Init() tea.Cmd {
	return tickCmd(m.gen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		// The game keeps its state; only the layout changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Runner) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.setStatus(m.saveScreenshot())
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	case core.ActionMute:
		if m.sound.ToggleMute() {
			m.setStatus("sound off")
		} else {
			m.setStatus("sound on")
		}
		return m, nil
	case core.ActionNone:
	default:
		m.game.HandleAction(action)
	}

	if steer, ok := m.keys.MapSteer(msg); ok {
		m.steer(steer)
	}

	return m, nil
}

// steer turns a key press into a pointer event so the game's router stays the
// only path that moves pieces.
func (m Runner) steer(s Steer) {
	switch g := m.game.(type) {
	case paddleGame:
		target := g.PaddlePos(s.Player).Add(s.Dir.Scale(keyStep))
		m.game.HandlePointer(g.PointerAt(target))
	case registry.PointerSurfacer:
		// Tap games: any key of a player touches the middle of their half.
		f := g.Field()
		y := f.Y / 4
		if s.Player == core.Player2 {
			y = f.Y * 3 / 4
		}
		m.game.HandlePointer(core.PointerEvent{
			Points:  []core.Point{{ClientX: f.X / 2, ClientY: y}},
			Surface: core.IdentitySurface(f),
			Logical: f,
		})
	}
}

// handleMouse maps a press or drag from terminal cells onto the field.
func (m Runner) handleMouse(msg tea.MouseMsg) {
	ps, ok := m.game.(registry.PointerSurfacer)
	if !ok {
		return
	}
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return
	}
	m.game.HandlePointer(core.PointerEvent{
		// Aim at the middle of the cell.
		Points:  []core.Point{{ClientX: float64(msg.X) + 0.5, ClientY: float64(msg.Y) + 0.5}},
		Surface: ps.PointerSurface(m.screen.Width(), m.screen.Height()),
		Logical: ps.Field(),
	})
}

// handleTick processes simulation ticks.
func (m Runner) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.quitting || m.backToMenu {
		return m, nil
	}

	if m.cpu != nil {
		if ev, ok := m.cpu.Drive(); ok {
			m.game.HandlePointer(ev)
		}
	}

	result := m.game.Step(m.config.Now())
	m.state = result.State
	m.sound.PlayAll(result.Cues)

	if m.status != "" && m.config.Now().Sub(m.statusT) > 2*time.Second {
		m.status = ""
	}

	return m, tickCmd(m.gen, m.config.TickRate)
}

func (m *Runner) setStatus(s string) {
	m.status = s
	m.statusT = m.config.Now()
}

// saveScreenshot writes the current frame: a PNG when the game can rasterise,
// the cell buffer as text otherwise. It returns a status line.
func (m *Runner) saveScreenshot() string {
	dir := m.shots
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: " + err.Error()
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	base := fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405"))

	if ir, ok := m.game.(registry.ImageRenderer); ok {
		path := filepath.Join(dir, base+".png")
		f, err := os.Create(path)
		if err != nil {
			return "screenshot failed: " + err.Error()
		}
		defer f.Close()
		if err := png.Encode(f, ir.RenderImage(2)); err != nil {
			return "screenshot failed: " + err.Error()
		}
		return "saved " + path
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	path := filepath.Join(dir, base+".txt")
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Runner) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorGreen)
	}
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Runner) State() core.GameState {
	return m.state
}

// Gen returns the tick generation this runner answers to.
func (m Runner) Gen() uint64 {
	return m.gen
}

// IsQuitting returns true if user requested to quit entirely.
func (m Runner) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Runner) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game as its own Bubble Tea program.
func Run(game registry.Game, opts RunnerOptions) error {
	p := tea.NewProgram(
		NewRunner(game, opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press and drag move paddles
	)

	_, err := p.Run()
	return err
}

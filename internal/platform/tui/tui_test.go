package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/duel-arcade/internal/core"
	"github.com/vovakirdan/duel-arcade/internal/engine"
	"github.com/vovakirdan/duel-arcade/internal/games/airhockey"
	"github.com/vovakirdan/duel-arcade/internal/games/bombpass"
	"github.com/vovakirdan/duel-arcade/internal/platform/sound"
	"github.com/vovakirdan/duel-arcade/internal/registry"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
		Clock:    engine.NewFakeClock(time.Unix(1_700_000_000, 0)),
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"w", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"r", core.ActionRestart, false},
		{"m", core.ActionMute, false},
		{"x", core.ActionNone, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapSteer(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		player core.PlayerID
		dir    core.Vec2
		ok     bool
	}{
		{"w", core.Player1, core.V(0, -1), true},
		{"d", core.Player1, core.V(1, 0), true},
		{"down", core.Player2, core.V(0, 1), true},
		{"left", core.Player2, core.V(-1, 0), true},
		{"enter", core.NoPlayer, core.Vec2{}, false},
	}

	for _, tt := range tests {
		s, ok := km.MapSteer(keyMsg(tt.key))
		if ok != tt.ok || s.Player != tt.player || s.Dir != tt.dir {
			t.Errorf("MapSteer(%q) = %+v, %v", tt.key, s, ok)
		}
	}
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"down":  MenuActionDown,
		"enter": MenuActionSelect,
		"tab":   MenuActionStats,
		"m":     MenuActionMute,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for key, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", key, got, want)
		}
	}
}

func TestRunnerDropsStaleTicks(t *testing.T) {
	old := NewRunner(airhockey.New(), RunnerOptions{Config: testConfig()})
	r := NewRunner(airhockey.New(), RunnerOptions{Config: testConfig()})
	if old.Gen() == r.Gen() {
		t.Fatal("runners share a tick generation")
	}

	if _, cmd := r.Update(TickMsg{Gen: old.Gen()}); cmd != nil {
		t.Error("stale tick was rescheduled")
	}
	if _, cmd := r.Update(TickMsg{Gen: r.Gen()}); cmd == nil {
		t.Error("current tick was not rescheduled")
	}
}

func TestRunnerStopsTickingAfterBack(t *testing.T) {
	var m tea.Model = NewRunner(airhockey.New(), RunnerOptions{Config: testConfig()})
	m, _ = m.Update(keyMsg("esc"))
	r := m.(Runner)
	if !r.BackToMenu() {
		t.Fatal("esc did not request the menu")
	}
	if _, cmd := r.Update(TickMsg{Gen: r.Gen()}); cmd != nil {
		t.Error("tick rescheduled after leaving the game")
	}

	m, cmd := m.Update(keyMsg("q"))
	if !m.(Runner).IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestRunnerSteersPaddle(t *testing.T) {
	g := airhockey.New()
	var m tea.Model = NewRunner(g, RunnerOptions{Config: testConfig()})

	m, _ = m.Update(keyMsg("enter"))
	if g.Phase() != airhockey.PhaseWaiting {
		t.Fatalf("phase = %v after enter, expected waiting", g.Phase())
	}

	before := g.PaddlePos(core.Player1)
	m, _ = m.Update(keyMsg("s"))
	after := g.PaddlePos(core.Player1)
	if after.Y <= before.Y {
		t.Errorf("P1 paddle did not move down: %v -> %v", before, after)
	}
	if g.Phase() != airhockey.PhasePlaying {
		t.Errorf("first steer did not start play, phase = %v", g.Phase())
	}

	p2 := g.PaddlePos(core.Player2)
	m.Update(keyMsg("left"))
	if got := g.PaddlePos(core.Player2); got.X >= p2.X {
		t.Errorf("P2 paddle did not move left: %v -> %v", p2, got)
	}
}

func TestRunnerMouseMapsThroughSurface(t *testing.T) {
	g := airhockey.New()
	var m tea.Model = NewRunner(g, RunnerOptions{Config: testConfig()})
	m, _ = m.Update(keyMsg("enter"))

	surf := g.PointerSurface(80, 24)
	x := int(surf.Left + surf.Width/2)
	y := int(surf.Top + surf.Height*3/4)
	m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	field := g.Field()
	want := core.V(
		(float64(x)+0.5-surf.Left)*field.X/surf.Width,
		(float64(y)+0.5-surf.Top)*field.Y/surf.Height,
	)
	got := g.PaddlePos(core.Player2)
	if math.Abs(got.X-want.X) > 0.01 || math.Abs(got.Y-want.Y) > 0.01 {
		t.Errorf("P2 paddle at %v, expected %v", got, want)
	}

	moved := g.PaddlePos(core.Player2)
	m.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if g.PaddlePos(core.Player2) != moved {
		t.Error("right button moved a paddle")
	}
}

func TestRunnerResizeKeepsGame(t *testing.T) {
	g := airhockey.New()
	var m tea.Model = NewRunner(g, RunnerOptions{Config: testConfig()})
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if g.Phase() != airhockey.PhaseWaiting {
		t.Errorf("resize reset the round, phase = %v", g.Phase())
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines after resize, expected 40", lines)
	}
}

type recorder struct {
	played int
}

func (r *recorder) Play(s ...beep.Streamer) {
	r.played += len(s)
}

func TestRunnerForwardsCues(t *testing.T) {
	out := &recorder{}
	cfg := testConfig()
	g := bombpass.New()
	var m tea.Model = NewRunner(g, RunnerOptions{Config: cfg, Sound: sound.NewPlayer(out, 1)})

	m, _ = m.Update(keyMsg("enter"))
	if g.Phase() != bombpass.PhasePlaying {
		t.Fatalf("phase = %v after enter", g.Phase())
	}

	// Player 1 steers with WASD, player 2 with the arrows.
	pass := "w"
	if g.Holder() == core.Player2 {
		pass = "up"
	}
	m, _ = m.Update(keyMsg(pass))
	if g.Passes() != 1 {
		t.Fatalf("passes = %d, expected 1", g.Passes())
	}

	m.Update(TickMsg{Gen: m.(Runner).Gen()})
	if out.played == 0 {
		t.Error("pass cue never reached the sound player")
	}
}

type countingDriver struct {
	calls int
}

func (d *countingDriver) Drive() (core.PointerEvent, bool) {
	d.calls++
	return core.PointerEvent{}, false
}

func TestSessionFlow(t *testing.T) {
	drv := &countingDriver{}
	var created registry.Game
	var m tea.Model = NewSessionModel(SessionOptions{
		Config: testConfig(),
		NewCPU: func(g registry.Game, _ int64) Driver {
			created = g
			return drv
		},
	})

	if !strings.Contains(m.View(), "Select a game") {
		t.Fatal("session does not open on the menu")
	}

	m, _ = m.Update(keyMsg("tab"))
	if !strings.Contains(m.View(), "STATS") {
		t.Fatal("tab did not open the stats board")
	}
	if !strings.Contains(m.View(), "stats storage unavailable") {
		t.Error("stats board without a store should say so")
	}

	m, cmd := m.Update(keyMsg("esc"))
	if cmd != nil {
		t.Error("leaving the stats board returned a command")
	}
	if !strings.Contains(m.View(), "Select a game") {
		t.Fatal("esc did not return to the menu")
	}

	m, cmd = m.Update(keyMsg("enter"))
	s := m.(SessionModel)
	if s.view != viewGame || cmd == nil {
		t.Fatal("enter did not start a game")
	}
	if created == nil || created.ID() != s.menu.Cursor() {
		t.Errorf("CPU factory got %v, expected the selected game", created)
	}

	m, _ = m.Update(TickMsg{Gen: s.runner.Gen()})
	if drv.calls != 1 {
		t.Errorf("CPU driven %d times on one tick", drv.calls)
	}

	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).view != viewMenu {
		t.Error("esc in game did not return to the menu")
	}

	m, cmd = m.Update(keyMsg("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu did not quit the session")
	}
}

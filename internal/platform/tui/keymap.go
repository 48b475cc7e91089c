package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a shell action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	case "m":
		return core.ActionMute, false
	}

	return core.ActionNone, false
}

// Steer is a keyboard nudge for one player's piece.
type Steer struct {
	Player core.PlayerID
	Dir    core.Vec2 // Unit direction in field coordinates
}

// MapSteer maps WASD to player 1 and the arrow keys to player 2.
func (km *KeyMapper) MapSteer(msg tea.KeyMsg) (Steer, bool) {
	switch msg.String() {
	case "w":
		return Steer{core.Player1, core.V(0, -1)}, true
	case "s":
		return Steer{core.Player1, core.V(0, 1)}, true
	case "a":
		return Steer{core.Player1, core.V(-1, 0)}, true
	case "d":
		return Steer{core.Player1, core.V(1, 0)}, true
	case "up":
		return Steer{core.Player2, core.V(0, -1)}, true
	case "down":
		return Steer{core.Player2, core.V(0, 1)}, true
	case "left":
		return Steer{core.Player2, core.V(-1, 0)}, true
	case "right":
		return Steer{core.Player2, core.V(1, 0)}, true
	}
	return Steer{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionStats
	MenuActionMute
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionStats
	case "m":
		return MenuActionMute
	}

	return MenuActionNone
}

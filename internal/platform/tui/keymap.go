package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roomplan/internal/core"
)

// KeyMapper translates Bubble Tea key messages to editor actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an editor action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "h":
		return core.ActionMoveLeft, false
	case "right", "l":
		return core.ActionMoveRight, false
	case "up", "k":
		return core.ActionMoveUp, false
	case "down", "j":
		return core.ActionMoveDown, false
	case "shift+right", "L":
		return core.ActionGrowW, false
	case "shift+left", "H":
		return core.ActionShrinkW, false
	case "shift+down", "J":
		return core.ActionGrowH, false
	case "shift+up", "K":
		return core.ActionShrinkH, false
	case "tab":
		return core.ActionNext, false
	case "shift+tab":
		return core.ActionPrev, false
	case "d":
		return core.ActionDoorMode, false
	case "w":
		return core.ActionNextWall, false
	case "n":
		return core.ActionAddBlock, false
	case "enter":
		return core.ActionCommit, false
	case "esc":
		return core.ActionCancel, false
	case "ctrl+s":
		return core.ActionSnapshot, false
	case "b":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

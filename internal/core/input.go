package core

// Action represents a semantic editor action, abstracted from physical key presses.
// This allows the editor to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionMoveLeft          // Left arrow, h - drag selection left
	ActionMoveRight         // Right arrow, l - drag selection right
	ActionMoveUp            // Up arrow, k - drag selection up
	ActionMoveDown          // Down arrow, j - drag selection down
	ActionGrowW             // Shift+Right - widen from the fixed top-left anchor
	ActionShrinkW           // Shift+Left
	ActionGrowH             // Shift+Down - heighten from the fixed top-left anchor
	ActionShrinkH           // Shift+Up
	ActionNext              // Tab - select next placement
	ActionPrev              // Shift+Tab - select previous placement
	ActionDoorMode          // D - toggle door editing
	ActionNextWall          // W - re-home the door on the next wall
	ActionAddBlock          // N - add a block at the suggested position
	ActionCommit            // Enter - end the gesture and write it through
	ActionCancel            // Esc - discard the uncommitted gesture
	ActionSnapshot          // Ctrl+S - save a text snapshot of the canvas
	ActionBack              // B - back to the room list
	ActionQuit              // Q, Ctrl+C - exit editor/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionGrowW:
		return "GrowW"
	case ActionShrinkW:
		return "ShrinkW"
	case ActionGrowH:
		return "GrowH"
	case ActionShrinkH:
		return "ShrinkH"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionDoorMode:
		return "DoorMode"
	case ActionNextWall:
		return "NextWall"
	case ActionAddBlock:
		return "AddBlock"
	case ActionCommit:
		return "Commit"
	case ActionCancel:
		return "Cancel"
	case ActionSnapshot:
		return "Snapshot"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action drags the selection.
func (a Action) IsMove() bool {
	return a >= ActionMoveLeft && a <= ActionMoveDown
}

// IsResize reports whether the action resizes the selection.
func (a Action) IsResize() bool {
	return a >= ActionGrowW && a <= ActionShrinkH
}

// Direction returns the unit delta for move and resize actions.
// Resize deltas are expressed as (dW, dH).
func (a Action) Direction() Point {
	switch a {
	case ActionMoveLeft, ActionShrinkW:
		return Point{X: -1}
	case ActionMoveRight, ActionGrowW:
		return Point{X: 1}
	case ActionMoveUp, ActionShrinkH:
		return Point{Y: -1}
	case ActionMoveDown, ActionGrowH:
		return Point{Y: 1}
	default:
		return Point{}
	}
}

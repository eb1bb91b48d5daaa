package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow - move cursor up
	ActionDown              // S, J, Down arrow - move cursor down
	ActionLeft              // A, H, Left arrow - move cursor left
	ActionRight             // D, L, Right arrow - move cursor right
	ActionTouch             // Space - touch the cell under the cursor
	ActionToggleFlag        // F - switch between reveal and flag input
	ActionConfirm           // Enter - confirm selection in menus, touch in game
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R - start a new board
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause the timer
	ActionClick             // Left mouse button - touch the cell under the pointer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionTouch:
		return "Touch"
	case ActionToggleFlag:
		return "ToggleFlag"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionClick:
		return "Click"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// ClickX and ClickY hold the screen cell of the last ActionClick.
	ClickX, ClickY int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetClick records a mouse click on screen cell (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Set(ActionClick)
	f.ClickX, f.ClickY = x, y
}

// Click returns the clicked screen cell and whether a click happened this frame.
func (f InputFrame) Click() (int, int, bool) {
	return f.ClickX, f.ClickY, f.Has(ActionClick)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.ClickX, f.ClickY = 0, 0
}

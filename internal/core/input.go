package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement actions describe keys held during the frame; the rest are one-shot triggers.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow - held
	ActionDown                // S, Down arrow - held
	ActionLeft                // A, Left arrow - held
	ActionRight               // D, Right arrow - held
	ActionSpin                // R - reroll the player's class
	ActionStartDungeon        // Enter - enter the configured dungeon
	ActionClassSheet          // C - toggle the class sheet overlay
	ActionQuit                // Esc, Q, Ctrl+C - exit
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
	case ActionSpin:
		return "Spin"
	case ActionStartDungeon:
		return "StartDungeon"
	case ActionClassSheet:
		return "ClassSheet"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Axis folds the four movement flags into two independent axes in {-1, 0, 1}.
// Opposing keys held together cancel out.
func (f InputFrame) Axis() (dx, dy int) {
	if f.Has(ActionRight) {
		dx++
	}
	if f.Has(ActionLeft) {
		dx--
	}
	if f.Has(ActionDown) {
		dy++
	}
	if f.Has(ActionUp) {
		dy--
	}
	return dx, dy
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

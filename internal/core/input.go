package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow, drag up
	ActionDown            // S, Down arrow, drag down
	ActionLeft            // A, Left arrow, drag left
	ActionRight           // D, Right arrow, drag right
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionNewGame         // N key - start over at any time
	ActionContinue        // C key - keep playing after a win
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionNewGame:
		return "NewGame"
	case ActionContinue:
		return "Continue"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four directional moves.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Elapsed is the real time since the previous frame. Zero means the
	// host did not measure it and the game uses its nominal tick.
	Elapsed time.Duration
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

// SetMove marks a directional action unless the frame already carries one.
// Returns false when the move was dropped.
func (f *InputFrame) SetMove(a Action) bool {
	if f.HasMove() {
		return false
	}
	f.Set(a)
	return true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// HasMove returns true if any directional action was triggered this frame.
func (f InputFrame) HasMove() bool {
	for a, on := range f.Actions {
		if on && a.IsMove() {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Elapsed = 0
}

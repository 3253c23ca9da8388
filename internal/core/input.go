package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionJump             // Space, W, Up - held while jumping
	ActionNewGame          // 1 - start from level 1 (menu)
	ActionRestart          // 2 in the menu, R after game over
	ActionNextLevel        // 3 - advance to the next level (menu)
	ActionPause            // P - pause/unpause while playing
	ActionMenu             // Esc, B - back to the menu
	ActionQuit             // Q, Ctrl+C - exit the process
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionNewGame:
		return "NewGame"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPause:
		return "Pause"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// Discrete actions (menu keys, restart) are set for the tick they were pressed;
// ActionJump is set on every tick the jump key is considered held.
type InputFrame struct {
	Actions map[Action]bool
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

package core

// Action represents a semantic game action, abstracted from physical key
// presses, mouse clicks and on-screen buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionPrimary        // Space: start, pause, resume, or back to idle after game over
	ActionPause          // P: pause/unpause
	ActionRestart        // R: restart immediately
	ActionBack           // B, Escape: back to menu
	ActionQuit           // Q, Ctrl+C: exit
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
	case ActionPrimary:
		return "Primary"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the direction name understood by the simulation for
// movement actions, or "" for every other action.
func (a Action) Direction() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return ""
	}
}

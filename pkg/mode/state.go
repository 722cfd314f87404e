package mode

// State is the lifecycle state of a Mode.
type State int

const (
	// StateInactive - the host has not entered the mode, or has left it.
	StateInactive State = iota

	// StateActive - the mode is entered and answers queries.
	StateActive
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Action tells the host what to do after a selection.
type Action int

const (
	// ActionNoOp - keep the current list, nothing was selected.
	ActionNoOp Action = iota

	// ActionSelect - an entry was chosen; the host should emit it.
	ActionSelect
)

func (a Action) String() string {
	if a == ActionSelect {
		return "select"
	}
	return "noop"
}

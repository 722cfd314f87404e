package mode

import (
	"errors"
	"fmt"
)

var (
	// ErrInactive is returned for events received while the mode is not active.
	ErrInactive = errors.New("mode is not active")

	// ErrNoIndex is returned when a Mode is created without a way to build its index.
	ErrNoIndex = errors.New("no index source configured")
)

// SelectionOutOfRangeError reports a selection past the end of the last
// result list, usually a host redraw racing the user. It is never fatal.
type SelectionOutOfRangeError struct {
	Position int
	Length   int
}

func (e *SelectionOutOfRangeError) Error() string {
	return fmt.Sprintf("selection %d out of range (%d results)", e.Position, e.Length)
}

// ActivationError wraps the catalog or index failure that kept the mode inactive.
type ActivationError struct {
	Err error
}

func (e *ActivationError) Error() string {
	return "activation failed: " + e.Err.Error()
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}

package strata

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the strata package.
var (
	// ErrInvalidArgument is returned when a caller violates an operation's
	// preconditions: an absent event or type, a malformed query range, or a
	// query against a type the store has never seen.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an iterator is driven outside its
	// protocol: reading or removing before a successful Next, after
	// exhaustion, or after Close.
	ErrInvalidState = errors.New("invalid iterator state")

	// ErrClosed is returned when operations are attempted on a closed store.
	ErrClosed = errors.New("store is closed")
)

// ArgumentError reports a precondition violation at a specific call site.
// It matches ErrInvalidArgument under errors.Is.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is implements error matching for ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// newArgumentError creates a new ArgumentError.
func newArgumentError(op, reason string) *ArgumentError {
	return &ArgumentError{Op: op, Reason: reason}
}

// StateError reports an iterator operation outside the Next/Current/Remove
// protocol. It matches ErrInvalidState under errors.Is.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: iterator %s", e.Op, e.State)
}

// Is implements error matching for StateError.
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// newStateError creates a new StateError.
func newStateError(op, state string) *StateError {
	return &StateError{Op: op, State: state}
}

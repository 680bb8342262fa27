package action

import (
	"errors"
	"fmt"
)

const (
	loadingSuffix = "_LOADING"
	successSuffix = "_SUCCESS"
	errorSuffix   = "_ERROR"
)

// Static error definitions for better error handling.
var (
	// ErrIncompleteSet indicates that an action set is missing one of its three lifecycle types.
	ErrIncompleteSet = errors.New("incomplete action set")
)

// Set holds the three related action type names for one logical API operation.
// Sets are created once per operation and never mutated afterwards.
type Set struct {
	// Name is the base name the three type names were derived from, retained for inspection.
	Name string `json:"name"`
	// Loading is the action type dispatched before the call starts.
	Loading string `json:"LOADING"`
	// Success is the action type dispatched when the call resolves.
	Success string `json:"SUCCESS"`
	// Error is the action type dispatched when the call fails.
	Error string `json:"ERROR"`
}

// NewSet derives an action set from a base name by suffixing it with
// "_LOADING", "_SUCCESS" and "_ERROR".
func NewSet(name string) Set {
	return Set{
		Name:    name,
		Loading: name + loadingSuffix,
		Success: name + successSuffix,
		Error:   name + errorSuffix,
	}
}

// Validate reports whether the set names all three lifecycle types.
func (s Set) Validate() error {
	if s.Loading == "" {
		return fmt.Errorf("%w: LOADING type is empty", ErrIncompleteSet)
	}

	if s.Success == "" {
		return fmt.Errorf("%w: SUCCESS type is empty", ErrIncompleteSet)
	}

	if s.Error == "" {
		return fmt.Errorf("%w: ERROR type is empty", ErrIncompleteSet)
	}

	return nil
}

// IsZero reports whether the set is entirely unset.
func (s Set) IsZero() bool {
	return s == Set{}
}

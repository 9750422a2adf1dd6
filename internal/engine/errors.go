package engine

import (
	"errors"
	"fmt"

	"washplane/internal/store"
)

// ErrBusinessNotFound means the referenced tenant does not exist.
// It is a caller bug, not a capacity rejection.
var ErrBusinessNotFound = errors.New("business not found")

// UnknownStatusError means a status value outside the seven-member enum was
// supplied at the boundary.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown job status %q", e.Value)
}

// InvalidTransitionError means the requested status change violates the
// state machine. The job must not be mutated.
type InvalidTransitionError struct {
	Current   store.JobStatus
	Requested store.JobStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.Current, e.Requested)
}

// Package engine implements the wash-job lifecycle: the status state machine,
// capacity admission, token numbering, and delivery estimates. All decisions
// are computed from explicit inputs; persistence is delegated to the store.
package engine

import (
	"washplane/internal/store"
)

// statusFlow is the forward workflow order. CANCELLED is not part of the
// forward flow; it is reachable from any non-terminal state.
var statusFlow = []store.JobStatus{
	store.JobStatusReceived,
	store.JobStatusInProgress,
	store.JobStatusWashing,
	store.JobStatusDrying,
	store.JobStatusCompleted,
	store.JobStatusDelivered,
}

var statusOrder = func() map[store.JobStatus]int {
	m := make(map[store.JobStatus]int, len(statusFlow))
	for i, s := range statusFlow {
		m[s] = i
	}
	return m
}()

// ParseStatus converts a wire value into a JobStatus.
// Anything outside the seven known statuses is an UnknownStatusError.
func ParseStatus(value string) (store.JobStatus, error) {
	s := store.JobStatus(value)
	if _, ok := statusOrder[s]; ok {
		return s, nil
	}
	if s == store.JobStatusCancelled {
		return s, nil
	}
	return "", &UnknownStatusError{Value: value}
}

// IsTerminal reports whether no further transition is legal from s.
func IsTerminal(s store.JobStatus) bool {
	return s == store.JobStatusDelivered || s == store.JobStatusCancelled
}

// CanTransition reports whether a job may move from current to target.
// Terminal states accept nothing. Cancellation is legal from any non-terminal
// state. Otherwise the move must not go backwards in the workflow order;
// staying put and skipping ahead are both allowed.
func CanTransition(current, target store.JobStatus) bool {
	if IsTerminal(current) {
		return false
	}
	if target == store.JobStatusCancelled {
		return true
	}
	currentIdx, ok := statusOrder[current]
	if !ok {
		return false
	}
	targetIdx, ok := statusOrder[target]
	if !ok {
		return false
	}
	return targetIdx >= currentIdx
}

// CheckTransition is CanTransition with a typed rejection.
// The returned error carries both statuses for the caller to surface.
func CheckTransition(current, target store.JobStatus) error {
	if !CanTransition(current, target) {
		return &InvalidTransitionError{Current: current, Requested: target}
	}
	return nil
}

// Next returns the single forward successor of current.
// DELIVERED and CANCELLED have none.
func Next(current store.JobStatus) (store.JobStatus, bool) {
	idx, ok := statusOrder[current]
	if !ok || idx == len(statusFlow)-1 {
		return "", false
	}
	return statusFlow[idx+1], true
}

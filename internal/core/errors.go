package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by an IssueSource when the requested number does
// not resolve to an issue or pull request
var ErrNotFound = errors.New("issue not found")

// ErrEmptyInput is returned by MedianDate for an empty list
var ErrEmptyInput = errors.New("cannot get median date from an empty list")

// TransportError wraps a failed call to the remote issue source that is
// not a plain "not found" answer: network failures, auth, server errors
type TransportError struct {
	Operation string
	Project   string
	ID        int
	Status    int // HTTP status when known, 0 otherwise
	Err       error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s#%d failed with status %d: %v",
			e.Operation, e.Project, e.ID, e.Status, e.Err)
	}

	return fmt.Sprintf("%s %s#%d failed: %v", e.Operation, e.Project, e.ID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SyncPhase names the step of a sync pass an error came from
type SyncPhase string

const (
	PhaseRefresh  SyncPhase = "refresh"
	PhaseDiscover SyncPhase = "discover"
	PhaseSave     SyncPhase = "save"
	PhaseReport   SyncPhase = "report"
)

// SyncError aborts the collection of one project
type SyncError struct {
	Project string
	Phase   SyncPhase
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("project %s: %s: %v", e.Project, e.Phase, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

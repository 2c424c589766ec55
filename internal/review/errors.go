// Package review implements the enhancement review workflow: the per-suggestion
// state machine, the session that owns it, and persistence of review state.
package review

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("suggestion not found")

// ErrSessionClosed is returned by operations on a session after Close.
var ErrSessionClosed = errors.New("review session is closed")

// NotFoundError reports an operation on a suggestion id the session does not know.
// Under correct use of the controller this is unreachable; it is a contract
// violation rather than a user-facing condition.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("suggestion not found: %s", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TransitionError reports a transition invoked outside its precondition. State is
// left unchanged.
type TransitionError struct {
	ID     string
	Action string
	From   types.State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s suggestion %s in state %s", e.Action, e.ID, e.From)
}

// PersistenceError represents a failed save, load or remove. The in-memory
// session is preserved so the caller can retry.
type PersistenceError struct {
	Message string
	Key     string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error: %s (%s): %v", e.Message, e.Key, e.Cause)
	}
	return fmt.Sprintf("persistence error: %s (%s)", e.Message, e.Key)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// StaleDataError represents persisted state that no longer matches the catalog or
// the saved-session schema. Sessions degrade to fresh catalog data when they see one.
type StaleDataError struct {
	Message string
	Cause   error
}

func (e *StaleDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stale data: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stale data: %s", e.Message)
}

func (e *StaleDataError) Unwrap() error {
	return e.Cause
}

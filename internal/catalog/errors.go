// Package catalog provides the candidates, base resumes and canned suggestions a
// review session is sourced from.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownCandidate is matched by every lookup of a candidate id the catalog does not hold.
var ErrUnknownCandidate = errors.New("unknown candidate")

// UnknownCandidateError reports a missing candidate id.
type UnknownCandidateError struct {
	ID string
}

func (e *UnknownCandidateError) Error() string {
	return fmt.Sprintf("unknown candidate: %s", e.ID)
}

func (e *UnknownCandidateError) Is(target error) bool {
	return target == ErrUnknownCandidate
}

// LoadError represents an error reading or decoding a catalog file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

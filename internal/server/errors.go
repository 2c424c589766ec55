// Package server provides the HTTP REST API for reviewing resume enhancements.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-enhancer/internal/catalog"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/sony/gobreaker/v2"
)

// ErrNotFound indicates a session or question the caller cannot see.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		validation  *ErrValidation
		fieldErrs   validator.ValidationErrors
		transition  *review.TransitionError
		persistence *review.PersistenceError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound),
		errors.Is(err, review.ErrNotFound),
		errors.Is(err, catalog.ErrUnknownCandidate):
		return http.StatusNotFound
	case errors.Is(err, review.ErrSessionClosed):
		return http.StatusGone
	case errors.As(err, &validation), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &transition):
		return http.StatusConflict
	case errors.As(err, &persistence),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

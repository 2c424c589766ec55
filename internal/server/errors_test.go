package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-enhancer/internal/catalog"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "session", ID: "abc"}
	assert.Equal(t, "session not found: abc", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "required"}
	assert.Equal(t, "validation error: text - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	validatorErr := (&types.CommitEditRequest{}).Validate()
	require.Error(t, validatorErr)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"unknown suggestion", &review.NotFoundError{ID: "x"}, http.StatusNotFound},
		{"wrapped unknown candidate", fmt.Errorf("open: %w", &catalog.UnknownCandidateError{ID: "99"}), http.StatusNotFound},
		{"unknown session", &ErrNotFound{Resource: "session", ID: "s"}, http.StatusNotFound},
		{"closed", review.ErrSessionClosed, http.StatusGone},
		{"transition", &review.TransitionError{ID: "a", Action: "commit", From: types.StateOriginal}, http.StatusConflict},
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"validator field errors", validatorErr, http.StatusBadRequest},
		{"persistence", &review.PersistenceError{Message: "save failed", Key: "k", Cause: errors.New("disk full")}, http.StatusServiceUnavailable},
		{"breaker open", gobreaker.ErrOpenState, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

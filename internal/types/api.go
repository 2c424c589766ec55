// Package types provides type definitions for structured data used throughout the resume-enhancer system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// OpenSessionRequest represents the request to open a review session for a candidate.
type OpenSessionRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,max=128"`
	JobID       string `json:"job_id,omitempty" validate:"omitempty,max=128"`
}

// CommitEditRequest carries the text for a committed edit.
type CommitEditRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// BufferRequest replaces the in-progress text of a suggestion being edited.
type BufferRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

// ToggleSkillRequest selects or deselects one skill option.
type ToggleSkillRequest struct {
	Selected bool `json:"selected"`
}

// AddSuggestionRequest represents a user-authored addition, such as a certification row.
type AddSuggestionRequest struct {
	Section       Section `json:"section" validate:"required,oneof=summary experience project skill achievement education certification custom-section"`
	Category      string  `json:"category,omitempty" validate:"max=128"`
	SuggestedText string  `json:"suggested_text" validate:"required,max=4000"`
	TargetSection string  `json:"target_section,omitempty" validate:"required_if=Section custom-section,max=128"`
}

// AnswerRequest stores a free-text answer to a personalised question.
type AnswerRequest struct {
	Answer string `json:"answer" validate:"max=8000"`
}

// Validate validates the OpenSessionRequest using the validator.
func (r *OpenSessionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CommitEditRequest using the validator.
func (r *CommitEditRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the BufferRequest using the validator.
func (r *BufferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddSuggestionRequest using the validator.
func (r *AddSuggestionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SessionView is the API representation of a review session.
type SessionView struct {
	SessionID    string            `json:"session_id"`
	CandidateID  string            `json:"candidate_id"`
	JobID        string            `json:"job_id"`
	BaseScore    int               `json:"base_score"`
	FitmentScore int               `json:"fitment_score"`
	Breakdown    ScoreBreakdown    `json:"breakdown"`
	Suggestions  []Suggestion      `json:"suggestions"`
	Questions    []Question        `json:"questions"`
	Answers      map[string]string `json:"answers,omitempty"`
	Restored     bool              `json:"restored"`
	Saved        bool              `json:"saved"`
	EditBuffers  map[string]string `json:"edit_buffers,omitempty"`
}

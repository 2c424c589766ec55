// Package types provides type definitions for structured data used throughout the resume-enhancer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SavedSessionVersion is the schema version written into persisted sessions.
const SavedSessionVersion = 1

// SavedSuggestion is the persisted review state of one suggestion.
type SavedSuggestion struct {
	ID              string   `json:"id"`
	State           State    `json:"state"`
	SuggestedText   string   `json:"suggested_text,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`
}

// SavedSession is the JSON document handed to the persistence collaborator on save.
type SavedSession struct {
	CandidateID          string            `json:"candidate_id"`
	JobID                string            `json:"job_id"`
	SchemaVersion        int               `json:"schema_version"`
	Suggestions          []SavedSuggestion `json:"suggestions"`
	FitmentScore         int               `json:"fitment_score"`
	OriginalFitmentScore int               `json:"original_fitment_score"`
	AdvancedAnswers      map[string]string `json:"advanced_answers,omitempty"`
	AddedSuggestions     []Suggestion      `json:"added_suggestions,omitempty"`
	LastUpdated          int64             `json:"last_updated"`
}

// Question is a personalised follow-up question asked of the candidate.
type Question struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Placeholder string `json:"placeholder"`
}

// SectionScore is one line of a score breakdown.
type SectionScore struct {
	Section  Section `json:"section"`
	Accepted int     `json:"accepted"`
	Points   int     `json:"points"`
}

// ScoreBreakdown explains how a fitment score was derived.
type ScoreBreakdown struct {
	Base     int            `json:"base"`
	Sections []SectionScore `json:"sections"`
	Skills   int            `json:"skill_options"`
	Raw      int            `json:"raw"`
	Score    int            `json:"score"`
}

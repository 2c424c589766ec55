package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenSessionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     OpenSessionRequest
		wantErr bool
	}{
		{"valid", OpenSessionRequest{CandidateID: "1"}, false},
		{"with job", OpenSessionRequest{CandidateID: "1", JobID: "backend"}, false},
		{"missing candidate", OpenSessionRequest{JobID: "backend"}, true},
		{"candidate too long", OpenSessionRequest{CandidateID: strings.Repeat("x", 129)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddSuggestionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddSuggestionRequest
		wantErr bool
	}{
		{
			name: "certification",
			req:  AddSuggestionRequest{Section: SectionCertification, SuggestedText: "AWS Certified Cloud Practitioner"},
		},
		{
			name: "custom section with target",
			req:  AddSuggestionRequest{Section: SectionCustom, SuggestedText: "Food bank volunteer", TargetSection: "volunteering"},
		},
		{
			name:    "custom section without target",
			req:     AddSuggestionRequest{Section: SectionCustom, SuggestedText: "Food bank volunteer"},
			wantErr: true,
		},
		{
			name:    "unknown section",
			req:     AddSuggestionRequest{Section: "hobby", SuggestedText: "Chess"},
			wantErr: true,
		},
		{
			name:    "missing text",
			req:     AddSuggestionRequest{Section: SectionSkill},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTextRequests_Validate(t *testing.T) {
	assert.Error(t, (&CommitEditRequest{}).Validate())
	assert.NoError(t, (&CommitEditRequest{Text: "Rewritten"}).Validate())
	assert.NoError(t, (&BufferRequest{}).Validate(), "an empty buffer is allowed")
	assert.Error(t, (&BufferRequest{Text: strings.Repeat("x", 4001)}).Validate())
	assert.NoError(t, (&AnswerRequest{}).Validate())
	assert.Error(t, (&AnswerRequest{Answer: strings.Repeat("x", 8001)}).Validate())
}

// Package types provides type definitions for structured data used throughout the resume-enhancer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section identifies the resume area a suggestion targets.
type Section string

const (
	SectionSummary       Section = "summary"
	SectionExperience    Section = "experience"
	SectionProject       Section = "project"
	SectionSkill         Section = "skill"
	SectionAchievement   Section = "achievement"
	SectionEducation     Section = "education"
	SectionCertification Section = "certification"
	SectionCustom        Section = "custom-section"
)

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionSummary, SectionExperience, SectionProject, SectionSkill,
		SectionAchievement, SectionEducation, SectionCertification, SectionCustom:
		return true
	}
	return false
}

// Kind says whether a suggestion rewrites an existing entry or adds a new one.
type Kind string

const (
	KindModifyExisting Kind = "modify-existing"
	KindAddNew         Kind = "add-new"
)

// State is the review state of a single suggestion.
type State string

const (
	StateOriginal State = "original"
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
	StateEditing  State = "editing"
)

// Valid reports whether s is a known review state.
func (s State) Valid() bool {
	switch s {
	case StateOriginal, StateAccepted, StateRejected, StateEditing:
		return true
	}
	return false
}

// SkillOption is one atomic pick under a skill-toggle suggestion. Each selected
// option is worth one point on its own, independent of the umbrella suggestion.
type SkillOption struct {
	Name     string `json:"name" yaml:"name"`
	Selected bool   `json:"selected" yaml:"selected,omitempty"`
}

// Suggestion is one proposed edit to a resume.
type Suggestion struct {
	ID            string        `json:"id" yaml:"id"`
	Section       Section       `json:"section" yaml:"section"`
	Kind          Kind          `json:"kind" yaml:"kind"`
	Category      string        `json:"category,omitempty" yaml:"category,omitempty"`
	OriginalText  string        `json:"original_text,omitempty" yaml:"original_text,omitempty"`
	SuggestedText string        `json:"suggested_text" yaml:"suggested_text"`
	Weight        int           `json:"weight" yaml:"weight,omitempty"`
	State         State         `json:"state" yaml:"-"`
	TargetSection string        `json:"target_section,omitempty" yaml:"target_section,omitempty"`
	Options       []SkillOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsSkillToggle reports whether the suggestion is a checkbox-style group of skills.
func (s Suggestion) IsSkillToggle() bool {
	return len(s.Options) > 0
}

// SelectedOptions returns the names of the selected skill options in order.
func (s Suggestion) SelectedOptions() []string {
	var out []string
	for _, o := range s.Options {
		if o.Selected {
			out = append(out, o.Name)
		}
	}
	return out
}

// Clone returns a copy of the suggestion that shares no slices with s.
func (s Suggestion) Clone() Suggestion {
	out := s
	if s.Options != nil {
		out.Options = make([]SkillOption, len(s.Options))
		copy(out.Options, s.Options)
	}
	return out
}

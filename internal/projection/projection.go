// Package projection merges accepted suggestions onto a base resume.
package projection

import (
	"strings"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// DefaultCustomSection is used for custom-section suggestions that name no target.
const DefaultCustomSection = "additional"

// Project returns the enhanced resume: a deep copy of base with every accepted
// suggestion applied in order. Suggestions in any other state leave their target
// untouched. base is never mutated.
func Project(base types.Resume, suggestions []types.Suggestion) types.Resume {
	out := base.Clone()

	for _, s := range suggestions {
		if s.IsSkillToggle() {
			applySkillOptions(&out, s)
			continue
		}
		if s.State != types.StateAccepted {
			continue
		}

		switch s.Kind {
		case types.KindModifyExisting:
			applyModify(&out, s)
		case types.KindAddNew:
			applyAdd(&out, s)
		}
	}

	return out
}

// applyModify replaces the first entry whose text equals OriginalText. A
// suggestion whose original text no longer matches anything is a no-op.
func applyModify(r *types.Resume, s types.Suggestion) {
	switch s.Section {
	case types.SectionSummary:
		if r.Summary == s.OriginalText {
			r.Summary = s.SuggestedText
		}
		return
	case types.SectionEducation:
		if r.Education == s.OriginalText {
			r.Education = s.SuggestedText
		}
		return
	}

	list := targetList(r, s, false)
	if list == nil {
		return
	}
	for i := range *list {
		if (*list)[i].Text == s.OriginalText {
			(*list)[i].Text = s.SuggestedText
			return
		}
	}
}

// applyAdd appends the suggested text to the target list, creating a named
// section when needed.
func applyAdd(r *types.Resume, s types.Suggestion) {
	switch s.Section {
	case types.SectionSummary:
		r.Summary = joinSentence(r.Summary, s.SuggestedText)
		return
	case types.SectionEducation:
		r.Education = joinSentence(r.Education, s.SuggestedText)
		return
	}

	list := targetList(r, s, true)
	*list = append(*list, types.Entry{Text: s.SuggestedText})
}

func applySkillOptions(r *types.Resume, s types.Suggestion) {
	for _, name := range s.SelectedOptions() {
		if containsFold(r.Skills, name) {
			continue
		}
		r.Skills = append(r.Skills, types.Entry{Text: name})
	}
}

// targetList resolves the list a suggestion writes to. Named sections are only
// created when create is set.
func targetList(r *types.Resume, s types.Suggestion, create bool) *[]types.Entry {
	switch s.Section {
	case types.SectionExperience:
		return &r.Experience
	case types.SectionProject:
		return &r.Projects
	case types.SectionSkill:
		return &r.Skills
	case types.SectionAchievement:
		return &r.Achievements
	case types.SectionCertification:
		if s.TargetSection == "" {
			return &r.Achievements
		}
		return namedSection(r, s.TargetSection, create)
	case types.SectionCustom:
		name := s.TargetSection
		if name == "" {
			name = DefaultCustomSection
		}
		return namedSection(r, name, create)
	}
	return nil
}

func namedSection(r *types.Resume, name string, create bool) *[]types.Entry {
	if sec := r.Section(name); sec != nil {
		return &sec.Entries
	}
	if !create {
		return nil
	}
	r.Sections = append(r.Sections, types.NamedSection{Name: name})
	return &r.Sections[len(r.Sections)-1].Entries
}

func joinSentence(existing, addition string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return addition
	}
	return existing + " " + addition
}

func containsFold(entries []types.Entry, text string) bool {
	for _, e := range entries {
		if strings.EqualFold(e.Text, text) {
			return true
		}
	}
	return false
}

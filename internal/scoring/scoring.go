// Package scoring derives fitment scores from the set of accepted suggestions.
package scoring

import (
	"sort"

	"github.com/jonathan/resume-enhancer/internal/types"
)

const (
	// MinScore and MaxScore bound every fitment score.
	MinScore = 0
	MaxScore = 100

	// SkillOptionWeight is the contribution of each selected skill-toggle option.
	SkillOptionWeight = 1

	// GenericWeight applies to any section without its own entry in the table.
	GenericWeight = 2
)

var sectionWeights = map[types.Section]int{
	types.SectionSkill:         5,
	types.SectionCertification: 6,
	types.SectionProject:       3,
	types.SectionExperience:    4,
}

// SectionWeight returns the fixed percentage-point weight for a section.
func SectionWeight(section types.Section) int {
	if w, ok := sectionWeights[section]; ok {
		return w
	}
	return GenericWeight
}

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v int) int {
	return max(MinScore, min(MaxScore, v))
}

// contribution is the number of points a suggestion adds in its current state.
// Skill-toggle suggestions count only their selected options, never the umbrella
// weight, so a selected skill is never counted twice.
func contribution(s types.Suggestion) int {
	if s.IsSkillToggle() {
		return len(s.SelectedOptions()) * SkillOptionWeight
	}
	if s.State == types.StateAccepted {
		return s.Weight
	}
	return 0
}

// ComputeScore re-derives the fitment score from scratch:
// clamp(base + sum of weights of accepted suggestions + selected skill options).
// The result depends only on the base score and the accepted set, never on the
// order in which suggestions were accepted.
func ComputeScore(base int, suggestions []types.Suggestion) int {
	total := base
	for _, s := range suggestions {
		total += contribution(s)
	}
	return Clamp(total)
}

// Breakdown returns the per-section contributions behind ComputeScore.
func Breakdown(base int, suggestions []types.Suggestion) types.ScoreBreakdown {
	bySection := make(map[types.Section]*types.SectionScore)
	skills := 0
	raw := base

	for _, s := range suggestions {
		if s.IsSkillToggle() {
			n := len(s.SelectedOptions()) * SkillOptionWeight
			skills += n
			raw += n
			continue
		}
		if s.State != types.StateAccepted {
			continue
		}
		entry, ok := bySection[s.Section]
		if !ok {
			entry = &types.SectionScore{Section: s.Section}
			bySection[s.Section] = entry
		}
		entry.Accepted++
		entry.Points += s.Weight
		raw += s.Weight
	}

	sections := make([]types.SectionScore, 0, len(bySection))
	for _, entry := range bySection {
		sections = append(sections, *entry)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Section < sections[j].Section
	})

	return types.ScoreBreakdown{
		Base:     base,
		Sections: sections,
		Skills:   skills,
		Raw:      raw,
		Score:    Clamp(raw),
	}
}

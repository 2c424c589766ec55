package scoring

import (
	"testing"

	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/stretchr/testify/assert"
)

func accepted(id string, section types.Section, weight int) types.Suggestion {
	return types.Suggestion{ID: id, Section: section, Weight: weight, State: types.StateAccepted}
}

func TestSectionWeight(t *testing.T) {
	tests := []struct {
		section types.Section
		want    int
	}{
		{types.SectionSkill, 5},
		{types.SectionCertification, 6},
		{types.SectionProject, 3},
		{types.SectionExperience, 4},
		{types.SectionSummary, 2},
		{types.SectionEducation, 2},
		{types.SectionCustom, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			assert.Equal(t, tt.want, SectionWeight(tt.section))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-12))
	assert.Equal(t, 0, Clamp(0))
	assert.Equal(t, 57, Clamp(57))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, 100, Clamp(104))
}

func TestComputeScore_OnlyAcceptedCount(t *testing.T) {
	suggestions := []types.Suggestion{
		accepted("a", types.SectionSkill, 5),
		{ID: "b", Section: types.SectionProject, Weight: 3, State: types.StateRejected},
		{ID: "c", Section: types.SectionExperience, Weight: 4, State: types.StateEditing},
		{ID: "d", Section: types.SectionSummary, Weight: 2, State: types.StateOriginal},
	}

	assert.Equal(t, 70, ComputeScore(65, suggestions))
}

func TestComputeScore_Bounds(t *testing.T) {
	many := make([]types.Suggestion, 0, 40)
	for i := 0; i < 40; i++ {
		many = append(many, accepted(string(rune('a'+i)), types.SectionCertification, 6))
	}

	assert.Equal(t, 100, ComputeScore(50, many))
	assert.Equal(t, 0, ComputeScore(-30, nil))
	assert.Equal(t, 0, ComputeScore(-30, []types.Suggestion{accepted("x", types.SectionSkill, 5)}))
}

func TestComputeScore_OrderInvariant(t *testing.T) {
	forward := []types.Suggestion{
		accepted("a", types.SectionSkill, 5),
		accepted("b", types.SectionCertification, 6),
		accepted("c", types.SectionProject, 3),
		{ID: "d", Section: types.SectionExperience, Weight: 4, State: types.StateRejected},
	}
	reversed := make([]types.Suggestion, len(forward))
	for i, s := range forward {
		reversed[len(forward)-1-i] = s
	}

	for _, base := range []int{0, 40, 65, 95, 100} {
		assert.Equal(t, ComputeScore(base, forward), ComputeScore(base, reversed), "base %d", base)
	}
}

func TestComputeScore_Scenarios(t *testing.T) {
	t.Run("accept, accept, undo first", func(t *testing.T) {
		first := accepted("skill", types.SectionSkill, 5)
		second := accepted("cert", types.SectionCertification, 6)

		assert.Equal(t, 70, ComputeScore(65, []types.Suggestion{first}))
		assert.Equal(t, 76, ComputeScore(65, []types.Suggestion{first, second}))

		first.State = types.StateOriginal
		assert.Equal(t, 71, ComputeScore(65, []types.Suggestion{first, second}))
	})

	t.Run("capped at 100", func(t *testing.T) {
		assert.Equal(t, 100, ComputeScore(98, []types.Suggestion{accepted("cert", types.SectionCertification, 6)}))
	})

	t.Run("skill toggle counts one point per selected option", func(t *testing.T) {
		toggle := types.Suggestion{
			ID:      "skills",
			Section: types.SectionSkill,
			Weight:  5,
			State:   types.StateAccepted,
			Options: []types.SkillOption{
				{Name: "Java", Selected: true},
				{Name: "React", Selected: true},
				{Name: "SQL", Selected: true},
			},
		}
		assert.Equal(t, 83, ComputeScore(80, []types.Suggestion{toggle}))

		toggle.Options[1].Selected = false
		assert.Equal(t, 82, ComputeScore(80, []types.Suggestion{toggle}))
	})
}

func TestBreakdown(t *testing.T) {
	suggestions := []types.Suggestion{
		accepted("a", types.SectionSkill, 5),
		accepted("b", types.SectionSkill, 5),
		accepted("c", types.SectionCertification, 6),
		{ID: "d", Section: types.SectionSkill, Options: []types.SkillOption{{Name: "Git", Selected: true}}},
	}

	b := Breakdown(90, suggestions)

	assert.Equal(t, 90, b.Base)
	assert.Equal(t, 1, b.Skills)
	assert.Equal(t, 107, b.Raw)
	assert.Equal(t, 100, b.Score)
	assert.Equal(t, ComputeScore(90, suggestions), b.Score)
	assert.Equal(t, []types.SectionScore{
		{Section: types.SectionCertification, Accepted: 1, Points: 6},
		{Section: types.SectionSkill, Accepted: 2, Points: 10},
	}, b.Sections)
}

package projection

import (
	"testing"

	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseResume() types.Resume {
	return types.Resume{
		Name:      "Janhavi Sharma",
		Email:     "janhavi.sharma@email.com",
		Phone:     "+91 9876543210",
		LinkedIn:  "linkedin.com/in/janhavisharma",
		Education: "Bachelor of Computer Science, Pune University (2021-2025)",
		Summary:   "Computer Science student with experience in web development and programming.",
		Experience: types.Entries(
			"Developed a Blood Bank Management System using Java and MySQL",
			"Created responsive web interfaces using HTML, CSS, and JavaScript",
		),
		Projects: []types.Entry{
			{Text: "Blood Bank Management System - Java application with database integration", Link: "https://example.com/bbms"},
			{Text: "E-commerce Website - Frontend development with responsive design"},
		},
		Skills:       types.Entries("Java", "React", "SQL"),
		Achievements: types.Entries("Dean's List for 2 consecutive semesters"),
		Sections: []types.NamedSection{
			{Name: "volunteering", Entries: types.Entries("Weekend coding club mentor")},
		},
	}
}

func TestProject_NoAcceptedSuggestionsIsDeepEqual(t *testing.T) {
	base := baseResume()
	suggestions := []types.Suggestion{
		{ID: "1", Section: types.SectionSkill, Kind: types.KindAddNew, SuggestedText: "Git", State: types.StateOriginal},
		{ID: "2", Section: types.SectionProject, Kind: types.KindModifyExisting, OriginalText: base.Projects[0].Text, SuggestedText: "x", State: types.StateRejected},
		{ID: "3", Section: types.SectionExperience, Kind: types.KindAddNew, SuggestedText: "y", State: types.StateEditing},
	}

	out := Project(base, suggestions)

	assert.Equal(t, base, out)
}

func TestProject_DoesNotMutateBase(t *testing.T) {
	base := baseResume()
	before := baseResume()
	suggestions := []types.Suggestion{
		{ID: "1", Section: types.SectionSkill, Kind: types.KindAddNew, SuggestedText: "Git", State: types.StateAccepted},
		{ID: "2", Section: types.SectionProject, Kind: types.KindModifyExisting, OriginalText: base.Projects[0].Text, SuggestedText: "Blood Bank Management System - Full-stack Java application", State: types.StateAccepted},
		{ID: "3", Section: types.SectionCustom, Kind: types.KindAddNew, TargetSection: "volunteering", SuggestedText: "Hackathon judge", State: types.StateAccepted},
		{ID: "4", Section: types.SectionSummary, Kind: types.KindModifyExisting, OriginalText: base.Summary, SuggestedText: "Aspiring full-stack developer.", State: types.StateAccepted},
	}

	out := Project(base, suggestions)

	assert.Equal(t, before, base)
	assert.NotEqual(t, base, out)
	out.Skills[0].Text = "changed"
	out.Sections[0].Entries[0].Text = "changed"
	assert.Equal(t, before, base)
}

func TestProject_ModifyExisting(t *testing.T) {
	base := baseResume()
	s := types.Suggestion{
		ID:            "p1",
		Section:       types.SectionProject,
		Kind:          types.KindModifyExisting,
		OriginalText:  base.Projects[0].Text,
		SuggestedText: "Blood Bank Management System - Full-stack Java application with MySQL",
		State:         types.StateAccepted,
	}

	out := Project(base, []types.Suggestion{s})

	require.Len(t, out.Projects, 2)
	assert.Equal(t, s.SuggestedText, out.Projects[0].Text)
	assert.Equal(t, "https://example.com/bbms", out.Projects[0].Link, "link survives replacement")
	assert.Equal(t, base.Projects[1], out.Projects[1])
}

func TestProject_ModifyExistingFirstMatchOnly(t *testing.T) {
	base := baseResume()
	base.Achievements = types.Entries("Same", "Same")
	s := types.Suggestion{
		Section:       types.SectionAchievement,
		Kind:          types.KindModifyExisting,
		OriginalText:  "Same",
		SuggestedText: "Different",
		State:         types.StateAccepted,
	}

	out := Project(base, []types.Suggestion{s})

	assert.Equal(t, []string{"Different", "Same"}, types.Texts(out.Achievements))
}

func TestProject_ModifyExistingNoMatchIsNoop(t *testing.T) {
	base := baseResume()
	s := types.Suggestion{
		Section:       types.SectionExperience,
		Kind:          types.KindModifyExisting,
		OriginalText:  "An entry that is not on the resume",
		SuggestedText: "Rewritten",
		State:         types.StateAccepted,
	}

	out := Project(base, []types.Suggestion{s})

	assert.Equal(t, base.Experience, out.Experience)
	assert.Equal(t, base, out)
}

func TestProject_AddNew(t *testing.T) {
	base := baseResume()
	tests := []struct {
		name  string
		s     types.Suggestion
		check func(t *testing.T, out types.Resume)
	}{
		{
			name: "skill appended",
			s:    types.Suggestion{Section: types.SectionSkill, Kind: types.KindAddNew, SuggestedText: "Git"},
			check: func(t *testing.T, out types.Resume) {
				assert.Equal(t, []string{"Java", "React", "SQL", "Git"}, types.Texts(out.Skills))
			},
		},
		{
			name: "certification without target goes to achievements",
			s:    types.Suggestion{Section: types.SectionCertification, Kind: types.KindAddNew, SuggestedText: "Oracle Certified Associate, Java SE 8 Programmer"},
			check: func(t *testing.T, out types.Resume) {
				assert.Equal(t, "Oracle Certified Associate, Java SE 8 Programmer", out.Achievements[len(out.Achievements)-1].Text)
			},
		},
		{
			name: "certification with target creates named section",
			s:    types.Suggestion{Section: types.SectionCertification, Kind: types.KindAddNew, TargetSection: "certifications", SuggestedText: "AWS Cloud Practitioner"},
			check: func(t *testing.T, out types.Resume) {
				sec := out.Section("certifications")
				require.NotNil(t, sec)
				assert.Equal(t, []string{"AWS Cloud Practitioner"}, types.Texts(sec.Entries))
				assert.Equal(t, base.Achievements, out.Achievements)
			},
		},
		{
			name: "custom section without target uses default name",
			s:    types.Suggestion{Section: types.SectionCustom, Kind: types.KindAddNew, SuggestedText: "Published a paper"},
			check: func(t *testing.T, out types.Resume) {
				sec := out.Section(DefaultCustomSection)
				require.NotNil(t, sec)
				assert.Equal(t, []string{"Published a paper"}, types.Texts(sec.Entries))
			},
		},
		{
			name: "experience appended",
			s:    types.Suggestion{Section: types.SectionExperience, Kind: types.KindAddNew, SuggestedText: "Experience with Git version control"},
			check: func(t *testing.T, out types.Resume) {
				assert.Len(t, out.Experience, 3)
			},
		},
		{
			name: "summary extended",
			s:    types.Suggestion{Section: types.SectionSummary, Kind: types.KindAddNew, SuggestedText: "Eager to learn."},
			check: func(t *testing.T, out types.Resume) {
				assert.Equal(t, base.Summary+" Eager to learn.", out.Summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.s.State = types.StateAccepted
			out := Project(base, []types.Suggestion{tt.s})
			tt.check(t, out)
		})
	}
}

func TestProject_ListLengthsFixedForModify(t *testing.T) {
	base := baseResume()
	var suggestions []types.Suggestion
	for _, e := range base.Experience {
		suggestions = append(suggestions, types.Suggestion{
			Section:       types.SectionExperience,
			Kind:          types.KindModifyExisting,
			OriginalText:  e.Text,
			SuggestedText: e.Text + " (improved)",
			State:         types.StateAccepted,
		})
	}

	out := Project(base, suggestions)

	assert.Len(t, out.Experience, len(base.Experience))
	for i := range out.Experience {
		assert.Equal(t, base.Experience[i].Text+" (improved)", out.Experience[i].Text)
	}
}

func TestProject_SkillToggle(t *testing.T) {
	base := baseResume()
	toggle := types.Suggestion{
		ID:      "toggle",
		Section: types.SectionSkill,
		Kind:    types.KindAddNew,
		Options: []types.SkillOption{
			{Name: "Git", Selected: true},
			{Name: "Docker", Selected: false},
			{Name: "react", Selected: true},
		},
	}

	out := Project(base, []types.Suggestion{toggle})

	assert.Equal(t, []string{"Java", "React", "SQL", "Git"}, types.Texts(out.Skills))
}

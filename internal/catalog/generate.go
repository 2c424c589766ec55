package catalog

import (
	"strings"

	"github.com/jonathan/resume-enhancer/internal/scoring"
	"github.com/jonathan/resume-enhancer/internal/types"
)

const (
	projectEnhancement = "Blood Bank Management System - Full-stack Java application with MySQL database, " +
		"featuring donor registration, blood inventory management, and automated notifications. " +
		"Implemented MVC architecture and RESTful APIs."
	versionControlExperience = "Experience with Git version control system for project collaboration and code management"
	certificationSuggestion  = "Oracle Certified Associate, Java SE 8 Programmer"
)

// toolingOptions are offered as one checkbox-style skill suggestion.
var toolingOptions = []string{"Docker", "AWS", "Kubernetes"}

// DefaultJobRequirements is the junior developer role every built-in candidate is reviewed against.
func DefaultJobRequirements() types.JobRequirements {
	return types.JobRequirements{
		ID:         DefaultJobID,
		Skills:     []string{"Java", "React", "SQL", "Git"},
		Experience: "0-2 years",
		Description: "Seeking a passionate Junior Software Developer for Java backend development, " +
			"React front-end, and SQL database management for AI Agentic applications.",
		Responsibilities: []string{
			"Develop and maintain web applications",
			"Work with databases and APIs",
			"Collaborate with development team",
			"Write clean, maintainable code",
		},
	}
}

// Generate derives the canned suggestions for a resume against a job. Ids are
// stable so persisted review state can be matched on the next session.
func Generate(resume types.Resume, job types.JobRequirements) []types.Suggestion {
	var out []types.Suggestion

	for _, skill := range MissingSkills(resume, job) {
		out = append(out, types.Suggestion{
			ID:            "skill_" + slug(skill),
			Section:       types.SectionSkill,
			Kind:          types.KindAddNew,
			Category:      "Skills Enhancement",
			SuggestedText: skill,
			Weight:        scoring.SectionWeight(types.SectionSkill),
		})
	}

	if len(resume.Projects) > 0 {
		out = append(out, types.Suggestion{
			ID:            "project_enhancement",
			Section:       types.SectionProject,
			Kind:          types.KindModifyExisting,
			Category:      "Project Enhancement",
			OriginalText:  resume.Projects[0].Text,
			SuggestedText: projectEnhancement,
			Weight:        scoring.SectionWeight(types.SectionProject),
		})
	}

	if resume.GitHub == "" {
		out = append(out, types.Suggestion{
			ID:            "github_profile",
			Section:       types.SectionExperience,
			Kind:          types.KindAddNew,
			Category:      "Profile Enhancement",
			SuggestedText: versionControlExperience,
			Weight:        scoring.SectionWeight(types.SectionExperience),
		})
	}

	out = append(out, types.Suggestion{
		ID:            "certification",
		Section:       types.SectionCertification,
		Kind:          types.KindAddNew,
		Category:      "Certification Enhancement",
		SuggestedText: certificationSuggestion,
		Weight:        scoring.SectionWeight(types.SectionCertification),
	})

	var options []types.SkillOption
	for _, name := range toolingOptions {
		if !hasSkill(resume, name) {
			options = append(options, types.SkillOption{Name: name})
		}
	}
	if len(options) > 0 {
		out = append(out, types.Suggestion{
			ID:       "tooling_skills",
			Section:  types.SectionSkill,
			Kind:     types.KindAddNew,
			Category: "Tooling Skills",
			Options:  options,
		})
	}

	return out
}

// MissingSkills returns the job skills no resume skill mentions, compared
// case-insensitively by substring.
func MissingSkills(resume types.Resume, job types.JobRequirements) []string {
	var missing []string
	for _, skill := range job.Skills {
		if !hasSkill(resume, skill) {
			missing = append(missing, skill)
		}
	}
	return missing
}

func hasSkill(resume types.Resume, skill string) bool {
	want := strings.ToLower(skill)
	for _, s := range resume.Skills {
		if strings.Contains(strings.ToLower(s.Text), want) {
			return true
		}
	}
	return false
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}), "_")
}

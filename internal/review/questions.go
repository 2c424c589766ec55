package review

import (
	"strings"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// Questions returns the personalised follow-up questions for a resume. The last
// question is always asked.
func Questions(resume types.Resume) []types.Question {
	var questions []types.Question

	if resume.GitHub == "" {
		questions = append(questions, types.Question{
			ID:          "version_control",
			Question:    "Do you have experience with version control systems like Git or SVN? Please describe your experience.",
			Placeholder: "e.g., Used Git for personal projects, familiar with branching and merging...",
		})
	}

	if anyContains(resume.Projects, "web") {
		questions = append(questions, types.Question{
			ID:          "web_technologies",
			Question:    "What specific web technologies and frameworks have you worked with in your projects?",
			Placeholder: "e.g., React, Node.js, Express, MongoDB, REST APIs...",
		})
	}

	if anyContains(resume.Projects, "management") {
		questions = append(questions, types.Question{
			ID:          "system_design",
			Question:    "Can you describe the architecture and design patterns you used in your management system projects?",
			Placeholder: "e.g., MVC pattern, database design, user authentication...",
		})
	}

	questions = append(questions, types.Question{
		ID:          "learning_goals",
		Question:    "What technologies or skills are you most excited to learn and develop in this role?",
		Placeholder: "e.g., Advanced React concepts, microservices, cloud technologies...",
	})

	return questions
}

func anyContains(entries []types.Entry, needle string) bool {
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Text), needle) {
			return true
		}
	}
	return false
}

package review

import "fmt"

// DefaultJobID is the context id used when a session is opened without a job.
const DefaultJobID = "default"

// SessionKey is the persistence key for a candidate's review state in a job context.
func SessionKey(candidateID, jobID string) string {
	if jobID == "" {
		jobID = DefaultJobID
	}
	return fmt.Sprintf("resume_enhancements_%s_%s", candidateID, jobID)
}

// ProjectionKey is the persistence key for a candidate's last saved enhanced resume.
func ProjectionKey(candidateID string) string {
	return fmt.Sprintf("enhanced_resume_%s", candidateID)
}

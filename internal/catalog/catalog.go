package catalog

import (
	"log"
	"sort"
	"strconv"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// DefaultJobID names the job requirements used when a session has no job context.
const DefaultJobID = "default"

// Provider is the read-only data source behind review sessions.
type Provider interface {
	Candidates() []types.Candidate
	Candidate(candidateID string) (types.Candidate, error)
	ResumeData(candidateID string) (types.Resume, error)
	Suggestions(candidateID, jobID string) ([]types.Suggestion, error)
	JobRequirements(jobID string) types.JobRequirements
}

type record struct {
	candidate   types.Candidate
	resume      types.Resume
	suggestions []types.Suggestion
}

// Static is an immutable in-memory catalog.
type Static struct {
	records map[string]*record
	jobs    map[string]types.JobRequirements
}

// NewStatic builds a catalog from candidate records and job requirements. A
// candidate with no explicit suggestions gets generated ones.
func NewStatic(jobs []types.JobRequirements) *Static {
	s := &Static{
		records: make(map[string]*record),
		jobs:    make(map[string]types.JobRequirements),
	}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	if _, ok := s.jobs[DefaultJobID]; !ok {
		s.jobs[DefaultJobID] = DefaultJobRequirements()
	}
	return s
}

// add registers a candidate. Explicit suggestions replace generation for every job.
func (s *Static) add(c types.Candidate, resume types.Resume, suggestions []types.Suggestion) {
	s.records[c.ID] = &record{candidate: c, resume: resume, suggestions: suggestions}
}

// Candidates lists every candidate ordered by id (numerically where ids are numbers).
func (s *Static) Candidates() []types.Candidate {
	out := make([]types.Candidate, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.candidate)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i].ID)
		b, errB := strconv.Atoi(out[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Static) lookup(id string) (*record, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, &UnknownCandidateError{ID: id}
	}
	return r, nil
}

// Candidate returns the candidate record, including the base fitment score.
func (s *Static) Candidate(candidateID string) (types.Candidate, error) {
	r, err := s.lookup(candidateID)
	if err != nil {
		return types.Candidate{}, err
	}
	return r.candidate, nil
}

// ResumeData returns a copy of the candidate's base resume.
func (s *Static) ResumeData(candidateID string) (types.Resume, error) {
	r, err := s.lookup(candidateID)
	if err != nil {
		return types.Resume{}, err
	}
	return r.resume.Clone(), nil
}

// Suggestions returns the canned suggestions for the candidate in the job context.
func (s *Static) Suggestions(candidateID, jobID string) ([]types.Suggestion, error) {
	r, err := s.lookup(candidateID)
	if err != nil {
		return nil, err
	}
	if r.suggestions != nil {
		out := make([]types.Suggestion, len(r.suggestions))
		for i, sg := range r.suggestions {
			out[i] = sg.Clone()
		}
		return out, nil
	}
	return Generate(r.resume, s.JobRequirements(jobID)), nil
}

// JobRequirements returns the requirements for the job. Unknown ids use the default job.
func (s *Static) JobRequirements(jobID string) types.JobRequirements {
	if jobID == "" {
		jobID = DefaultJobID
	}
	job, ok := s.jobs[jobID]
	if !ok {
		log.Printf("[catalog] unknown job %q, using default requirements", jobID)
		job = s.jobs[DefaultJobID]
	}
	job.Skills = append([]string(nil), job.Skills...)
	job.Responsibilities = append([]string(nil), job.Responsibilities...)
	return job
}

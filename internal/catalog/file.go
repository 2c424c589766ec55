package catalog

import (
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-enhancer/internal/schemas"
	"github.com/jonathan/resume-enhancer/internal/scoring"
	"github.com/jonathan/resume-enhancer/internal/types"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk catalog layout.
type fileDocument struct {
	Jobs       []types.JobRequirements `yaml:"jobs"`
	Candidates []fileCandidate         `yaml:"candidates"`
}

type fileCandidate struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	JobID        string             `yaml:"job_id"`
	FitmentScore int                `yaml:"fitment_score"`
	Resume       types.Resume       `yaml:"resume"`
	Suggestions  []types.Suggestion `yaml:"suggestions"`
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[catalog] loaded %d candidates from %s", len(s.records), path)
	return s, nil
}

// Parse decodes and validates a YAML catalog. Suggestions without a weight get
// their section's default and skill options always start deselected; a candidate
// without suggestions gets generated ones.
func Parse(data []byte) (*Static, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "invalid YAML", Cause: err}
	}
	if err := schemas.ValidateCatalog(raw); err != nil {
		return nil, &LoadError{Message: "catalog failed validation", Cause: err}
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode catalog", Cause: err}
	}

	s := NewStatic(doc.Jobs)
	for _, c := range doc.Candidates {
		if _, dup := s.records[c.ID]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate candidate id %s", c.ID)}
		}
		if c.Resume.Name == "" {
			c.Resume.Name = c.Name
		}
		if c.JobID == "" {
			c.JobID = DefaultJobID
		}

		var suggestions []types.Suggestion
		if len(c.Suggestions) > 0 {
			suggestions = make([]types.Suggestion, len(c.Suggestions))
			for i, sg := range c.Suggestions {
				if sg.Weight == 0 && !sg.IsSkillToggle() {
					sg.Weight = scoring.SectionWeight(sg.Section)
				}
				if sg.Kind == types.KindAddNew {
					sg.OriginalText = ""
				}
				sg.State = types.StateOriginal
				for j := range sg.Options {
					sg.Options[j].Selected = false
				}
				suggestions[i] = sg
			}
		}

		s.add(types.Candidate{
			ID:           c.ID,
			Name:         c.Name,
			JobID:        c.JobID,
			FitmentScore: scoring.Clamp(c.FitmentScore),
		}, c.Resume, suggestions)
	}
	return s, nil
}

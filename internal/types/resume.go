// Package types provides type definitions for structured data used throughout the resume-enhancer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Entry is a single line item in a resume list, optionally carrying a hyperlink.
type Entry struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// NamedSection is an optional resume section such as certifications or volunteering.
type NamedSection struct {
	Name    string  `json:"name" yaml:"name"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Resume is the subject of a review session. It is read-only input to the
// workflow; only projected copies are ever written out.
type Resume struct {
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty" yaml:"github,omitempty"`
	Education string `json:"education" yaml:"education"`
	Summary   string `json:"summary" yaml:"summary"`

	Experience   []Entry `json:"experience" yaml:"experience"`
	Projects     []Entry `json:"projects" yaml:"projects"`
	Skills       []Entry `json:"skills" yaml:"skills"`
	Achievements []Entry `json:"achievements" yaml:"achievements"`

	Sections []NamedSection `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Section returns the named optional section, or nil if the resume has none by that name.
func (r *Resume) Section(name string) *NamedSection {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the resume.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = cloneEntries(r.Experience)
	out.Projects = cloneEntries(r.Projects)
	out.Skills = cloneEntries(r.Skills)
	out.Achievements = cloneEntries(r.Achievements)
	if r.Sections != nil {
		out.Sections = make([]NamedSection, len(r.Sections))
		for i, s := range r.Sections {
			out.Sections[i] = NamedSection{Name: s.Name, Entries: cloneEntries(s.Entries)}
		}
	}
	return out
}

func cloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	out := make([]Entry, len(in))
	copy(out, in)
	return out
}

// Texts returns the plain text of each entry in order.
func Texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

// Entries wraps plain strings as link-less entries.
func Entries(texts ...string) []Entry {
	out := make([]Entry, len(texts))
	for i, t := range texts {
		out[i] = Entry{Text: t}
	}
	return out
}

// Candidate is the catalog record for a person under review.
type Candidate struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	JobID        string `json:"job_id" yaml:"job_id"`
	FitmentScore int    `json:"fitment_score" yaml:"fitment_score"`
}

// JobRequirements describes what a job asks for. Only Skills drives suggestion generation.
type JobRequirements struct {
	ID               string   `json:"id" yaml:"id"`
	Skills           []string `json:"skills" yaml:"skills"`
	Experience       string   `json:"experience,omitempty" yaml:"experience,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`
}

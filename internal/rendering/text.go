package rendering

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// ContentType is the media type of rendered exports.
const ContentType = "text/plain; charset=utf-8"

const defaultTemplate = `ENHANCED RESUME
==================

Name: {{.Name}}
Email: {{.Email}}
Contact: {{.Phone}}
LinkedIn: {{.LinkedIn}}
{{if .GitHub}}GitHub: {{.GitHub}}
{{end}}
PROFESSIONAL SUMMARY
-------
{{.Summary}}

EDUCATION
---------
{{.Education}}

TECHNICAL SKILLS
----------------
{{range .Skills}}• {{.}}
{{end}}
EXPERIENCE
----------
{{range .Experience}}• {{.}}
{{end}}
PROJECTS
--------
{{range .Projects}}• {{.}}
{{end}}
ACHIEVEMENTS
------------
{{range .Achievements}}• {{.}}
{{end}}{{range .Sections}}
{{.Heading}}
{{.Rule}}
{{range .Entries}}• {{.}}
{{end}}{{end}}

FITMENT SCORE: {{.Score}}%
`

// TemplateData is what export templates are executed against. Every string is
// already flattened to a single line.
type TemplateData struct {
	Name      string
	Email     string
	Phone     string
	LinkedIn  string
	GitHub    string
	Summary   string
	Education string

	Skills       []string
	Experience   []string
	Projects     []string
	Achievements []string
	Sections     []SectionData

	Score int
}

// SectionData is a named optional section such as certifications.
type SectionData struct {
	Heading string
	Rule    string
	Entries []string
}

var builtin = template.Must(template.New("resume").Parse(defaultTemplate))

// Text renders the enhanced resume with the built-in layout: contact block,
// summary, education, skills, experience, projects, achievements, any named
// sections and a trailing fitment score.
func Text(resume types.Resume, score int) (string, error) {
	return execute(builtin, resume, score)
}

// TextWithTemplate renders with a custom text/template file.
func TextWithTemplate(resume types.Resume, score int, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, resume, score)
}

func execute(tmpl *template.Template, resume types.Resume, score int) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(resume, score)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

func buildTemplateData(r types.Resume, score int) *TemplateData {
	data := &TemplateData{
		Name:         Flatten(r.Name),
		Email:        Flatten(r.Email),
		Phone:        Flatten(r.Phone),
		LinkedIn:     Flatten(r.LinkedIn),
		GitHub:       Flatten(r.GitHub),
		Summary:      Flatten(r.Summary),
		Education:    Flatten(r.Education),
		Skills:       lines(r.Skills),
		Experience:   lines(r.Experience),
		Projects:     lines(r.Projects),
		Achievements: lines(r.Achievements),
		Score:        score,
	}
	for _, s := range r.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		heading := strings.ToUpper(Flatten(s.Name))
		data.Sections = append(data.Sections, SectionData{
			Heading: heading,
			Rule:    strings.Repeat("-", len([]rune(heading))),
			Entries: lines(s.Entries),
		})
	}
	return data
}

// lines renders entries one per line, appending the link when there is one.
func lines(entries []types.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		text := Flatten(e.Text)
		if e.Link != "" {
			text = fmt.Sprintf("%s (%s)", text, Flatten(e.Link))
		}
		out = append(out, text)
	}
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the download name for a candidate's export.
func FileName(name string) string {
	return whitespace.ReplaceAllString(name, "_") + "_Enhanced_Resume.txt"
}

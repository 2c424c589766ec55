package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() types.Resume {
	return types.Resume{
		Name:         "Janhavi Sharma",
		Email:        "janhavi.sharma@email.com",
		Phone:        "+91 9876543210",
		LinkedIn:     "linkedin.com/in/janhavisharma",
		Education:    "Bachelor of Computer Science, Pune University (2021-2025)",
		Summary:      "Computer Science student.",
		Experience:   types.Entries("Developed a Blood Bank Management System"),
		Skills:       types.Entries("Java", "Git"),
		Projects:     []types.Entry{{Text: "Weather App", Link: "github.com/x/weather"}},
		Achievements: types.Entries("Dean's List"),
	}
}

func TestText_Layout(t *testing.T) {
	out, err := Text(sampleResume(), 77)
	require.NoError(t, err)

	want := "ENHANCED RESUME\n" +
		"==================\n\n" +
		"Name: Janhavi Sharma\n" +
		"Email: janhavi.sharma@email.com\n" +
		"Contact: +91 9876543210\n" +
		"LinkedIn: linkedin.com/in/janhavisharma\n" +
		"\n" +
		"PROFESSIONAL SUMMARY\n-------\nComputer Science student.\n\n" +
		"EDUCATION\n---------\nBachelor of Computer Science, Pune University (2021-2025)\n\n" +
		"TECHNICAL SKILLS\n----------------\n• Java\n• Git\n\n" +
		"EXPERIENCE\n----------\n• Developed a Blood Bank Management System\n\n" +
		"PROJECTS\n--------\n• Weather App (github.com/x/weather)\n\n" +
		"ACHIEVEMENTS\n------------\n• Dean's List\n" +
		"\n\nFITMENT SCORE: 77%\n"
	assert.Equal(t, want, out)
}

func TestText_GitHubAndSections(t *testing.T) {
	r := sampleResume()
	r.GitHub = "github.com/janhavi"
	r.Sections = []types.NamedSection{
		{Name: "certifications", Entries: types.Entries("Oracle Certified Associate")},
		{Name: "empty"},
	}

	out, err := Text(r, 100)
	require.NoError(t, err)

	assert.Contains(t, out, "LinkedIn: linkedin.com/in/janhavisharma\nGitHub: github.com/janhavi\n\nPROFESSIONAL SUMMARY")
	assert.Contains(t, out, "• Dean's List\n\nCERTIFICATIONS\n--------------\n• Oracle Certified Associate\n\n\nFITMENT SCORE: 100%\n")
	assert.NotContains(t, out, "EMPTY")
}

func TestText_FlattensMultilineEntries(t *testing.T) {
	r := sampleResume()
	r.Skills = types.Entries("Go\n\tand  Rust")

	out, err := Text(r, 50)
	require.NoError(t, err)
	assert.Contains(t, out, "• Go and Rust\n")
}

func TestTextWithTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{upper .Name}} {{.Score}}% {{len .Skills}} skills`), 0644))

	out, err := TextWithTemplate(sampleResume(), 81, path)
	require.NoError(t, err)
	assert.Equal(t, "JANHAVI SHARMA 81% 2 skills", out)
}

func TestTextWithTemplate_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.tmpl")
	require.NoError(t, os.WriteFile(broken, []byte(`{{.Name`), 0644))
	missingField := filepath.Join(dir, "missing.tmpl")
	require.NoError(t, os.WriteFile(missingField, []byte(`{{.Salary}}`), 0644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"not found", filepath.Join(dir, "nope.tmpl"), "template file not found"},
		{"parse error", broken, "failed to parse template"},
		{"execute error", missingField, "failed to execute template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TextWithTemplate(sampleResume(), 1, tt.path)
			var te *TemplateError
			require.ErrorAs(t, err, &te)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Janhavi Sharma":    "Janhavi_Sharma_Enhanced_Resume.txt",
		"Anita  \tDesai":    "Anita_Desai_Enhanced_Resume.txt",
		"Vikram":            "Vikram_Enhanced_Resume.txt",
		"Mary Ann O'Connor": "Mary_Ann_O'Connor_Enhanced_Resume.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in), in)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"  leading and trailing  ", "leading and trailing"},
		{"line\r\nbreak", "line break"},
		{"bell\aring", "bell ring"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Flatten(tt.in), strings.ReplaceAll(tt.in, "\n", `\n`))
	}
}

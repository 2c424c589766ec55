// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-enhancer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidates outputs the catalog listing.
func (p *Printer) PrintCandidates(candidates []types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("%-4s %-30s %3d%%  [%s]\n", c.ID, truncate(c.Name, 30), c.FitmentScore, c.JobID))
	}

	p.printBox("CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobRequirements outputs the job a session is reviewed against.
func (p *Printer) PrintJobRequirements(job *types.JobRequirements) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:        %s\n", job.ID))
	if job.Experience != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", job.Experience))
	}
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", strings.Join(job.Skills, ", ")))

	if len(job.Responsibilities) > 0 {
		sb.WriteString("\nResponsibilities:\n")
		count := min(len(job.Responsibilities), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Responsibilities[i]))
		}
		if len(job.Responsibilities) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Responsibilities)-3))
		}
	}

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// stateMark is the one-character marker shown before a suggestion.
func stateMark(s types.State) string {
	switch s {
	case types.StateAccepted:
		return "✓"
	case types.StateRejected:
		return "✗"
	case types.StateEditing:
		return "✎"
	default:
		return "·"
	}
}

// PrintSuggestions outputs every suggestion with its review state.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	for i, sg := range suggestions {
		sb.WriteString(fmt.Sprintf("%s %s (%s, +%d)\n", stateMark(sg.State), sg.ID, sg.Section, sg.Weight))
		sb.WriteString(fmt.Sprintf("  %s\n", sg.SuggestedText))
		if sg.IsSkillToggle() {
			opts := make([]string, 0, len(sg.Options))
			for _, o := range sg.Options {
				box := "[ ]"
				if o.Selected {
					box = "[x]"
				}
				opts = append(opts, box+" "+o.Name)
			}
			sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(opts, "  ")))
		}
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs how the fitment score was reached.
func (p *Printer) PrintBreakdown(b types.ScoreBreakdown) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base score:     %d%%\n", b.Base))
	for _, s := range b.Sections {
		sb.WriteString(fmt.Sprintf("  %-14s %d accepted  +%d\n", s.Section, s.Accepted, s.Points))
	}
	if b.Skills > 0 {
		sb.WriteString(fmt.Sprintf("  %-14s +%d\n", "skill options", b.Skills))
	}
	if b.Raw != b.Score {
		sb.WriteString(fmt.Sprintf("Raw total:      %d (clamped)\n", b.Raw))
	}
	sb.WriteString(fmt.Sprintf("Fitment score:  %d%%", b.Score))

	p.printBox("FITMENT SCORE", sb.String())
}

// PrintSaved reports a successful save.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSaved(key string, score int) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(fmt.Sprintf("✅ SAVED %s (%d%%)", key, score), boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

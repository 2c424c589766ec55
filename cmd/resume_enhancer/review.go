package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// action is one step of a review script.
type action struct {
	Do       string `yaml:"do" validate:"required,oneof=accept reject edit buffer commit cancel undo toggle add answer"`
	ID       string `yaml:"id,omitempty" validate:"required_unless=Do add"`
	Option   string `yaml:"option,omitempty" validate:"required_if=Do toggle"`
	Selected bool   `yaml:"selected,omitempty"`
	Text     string `yaml:"text,omitempty" validate:"required_if=Do commit,required_if=Do add"`
	Section  string `yaml:"section,omitempty" validate:"required_if=Do add"`
	Target   string `yaml:"target_section,omitempty"`
}

// script is a YAML file of review actions.
type script struct {
	Actions []action `yaml:"actions" validate:"dive"`
	Save    bool     `yaml:"save"`
}

type reviewOptions struct {
	script   string
	accept   []string
	reject   []string
	commit   []string
	selected []string
	answers  []string
	save     bool
	json     bool
}

func newReviewCmd(g *globalOptions) *cobra.Command {
	o := &reviewOptions{}
	cmd := &cobra.Command{
		Use:   "review <candidate-id>",
		Short: "Apply review actions to a candidate's suggestions",
		Long: `Open a review session for a candidate, restoring saved state when present, apply actions and
optionally save. Actions come from a YAML script (--script) followed by flags in this order:
--accept, --reject, --commit, --select, --answer.

Script format:

  actions:
    - {do: accept, id: skill_git}
    - {do: commit, id: project_enhancement, text: "Rewritten project line"}
    - {do: toggle, id: tooling_skills, option: Docker, selected: true}
    - {do: add, section: certification, text: "AWS Certified Cloud Practitioner"}
    - {do: answer, id: learning_goals, text: "Distributed systems"}
  save: true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, g, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.script, "script", "s", "", "Path to a YAML review script")
	cmd.Flags().StringArrayVar(&o.accept, "accept", nil, "Accept a suggestion (repeatable)")
	cmd.Flags().StringArrayVar(&o.reject, "reject", nil, "Reject a suggestion (repeatable)")
	cmd.Flags().StringArrayVar(&o.commit, "commit", nil, "Edit and accept a suggestion with new text, as id=text (repeatable)")
	cmd.Flags().StringArrayVar(&o.selected, "select", nil, "Select a skill option, as id/option (repeatable)")
	cmd.Flags().StringArrayVar(&o.answers, "answer", nil, "Answer a personalised question, as id=text (repeatable)")
	cmd.Flags().BoolVar(&o.save, "save", false, "Save the session after applying actions")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the session as JSON")
	return cmd
}

// actions builds the ordered action list from the script and flags.
func (o *reviewOptions) actions() ([]action, bool, error) {
	var steps []action
	save := o.save

	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read script: %w", err)
		}
		var sc script
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, false, fmt.Errorf("failed to parse script %s: %w", o.script, err)
		}
		if err := validator.New().Struct(sc); err != nil {
			return nil, false, fmt.Errorf("invalid script %s: %w", o.script, err)
		}
		steps = append(steps, sc.Actions...)
		save = save || sc.Save
	}

	for _, id := range o.accept {
		steps = append(steps, action{Do: "accept", ID: id})
	}
	for _, id := range o.reject {
		steps = append(steps, action{Do: "reject", ID: id})
	}
	for _, kv := range o.commit {
		id, text, ok := strings.Cut(kv, "=")
		if !ok || id == "" || text == "" {
			return nil, false, fmt.Errorf("--commit expects id=text, got %q", kv)
		}
		steps = append(steps, action{Do: "edit", ID: id}, action{Do: "commit", ID: id, Text: text})
	}
	for _, pair := range o.selected {
		id, option, ok := strings.Cut(pair, "/")
		if !ok || id == "" || option == "" {
			return nil, false, fmt.Errorf("--select expects id/option, got %q", pair)
		}
		steps = append(steps, action{Do: "toggle", ID: id, Option: option, Selected: true})
	}
	for _, kv := range o.answers {
		id, text, ok := strings.Cut(kv, "=")
		if !ok || id == "" {
			return nil, false, fmt.Errorf("--answer expects id=text, got %q", kv)
		}
		steps = append(steps, action{Do: "answer", ID: id, Text: text})
	}

	return steps, save, nil
}

// apply runs one action against the session.
func apply(s *review.Session, a action) error {
	c := s.Controller()
	switch a.Do {
	case "accept":
		return c.Accept(a.ID)
	case "reject":
		return c.Reject(a.ID)
	case "edit":
		return c.Edit(a.ID)
	case "buffer":
		return c.UpdateBuffer(a.ID, a.Text)
	case "commit":
		return c.CommitEdit(a.ID, a.Text)
	case "cancel":
		return c.CancelEdit(a.ID)
	case "undo":
		return c.Undo(a.ID)
	case "toggle":
		return c.ToggleSkill(a.ID, a.Option, a.Selected)
	case "add":
		section := types.Section(a.Section)
		if !section.Valid() {
			return fmt.Errorf("unknown section: %s", a.Section)
		}
		c.AddSuggestion(types.Suggestion{Section: section, SuggestedText: a.Text, TargetSection: a.Target})
		return nil
	case "answer":
		return s.SetAnswer(a.ID, a.Text)
	}
	return fmt.Errorf("unknown action: %s", a.Do)
}

func runReview(cmd *cobra.Command, g *globalOptions, o *reviewOptions, candidateID string) error {
	steps, save, err := o.actions()
	if err != nil {
		return err
	}

	env, err := g.openSession(cmd, candidateID)
	if err != nil {
		return err
	}
	defer env.close()

	if env.session.Restored() {
		_, _ = fmt.Fprintf(env.out, "Restored saved session for candidate %s\n", candidateID)
	}

	for i, step := range steps {
		if err := apply(env.session, step); err != nil {
			return fmt.Errorf("action %d (%s %s): %w", i+1, step.Do, step.ID, err)
		}
	}

	if save {
		result, err := env.session.Save(cmd.Context())
		if err != nil {
			return err
		}
		if env.cfg.Verbose {
			env.printer.PrintSaved(result.Key, result.Score)
		}
	}

	if o.json {
		return printJSON(env, candidateID)
	}

	env.describe()
	_, _ = fmt.Fprintf(env.out, "Fitment score: %d%% (base %d%%)\n", env.session.Score(), env.session.BaseScore())
	return nil
}

func printJSON(env *sessionEnv, candidateID string) error {
	s := env.session
	view := types.SessionView{
		CandidateID:  candidateID,
		JobID:        s.JobID(),
		BaseScore:    s.BaseScore(),
		FitmentScore: s.Score(),
		Breakdown:    s.Breakdown(),
		Suggestions:  s.Suggestions(),
		Questions:    s.Questions(),
		Answers:      s.Answers(),
		Restored:     s.Restored(),
		Saved:        s.Saved(),
		EditBuffers:  s.EditBuffers(),
	}
	enc := json.NewEncoder(env.out)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-enhancer/internal/rendering"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	outDir   string
	stdout   bool
	template string
}

func newExportCmd(g *globalOptions) *cobra.Command {
	o := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <candidate-id>",
		Short: "Write the enhanced resume for a candidate as plain text",
		Long: `Render the enhanced resume from the candidate's saved review state. Without a saved session the
original resume is exported with the base fitment score. The file is named <Name>_Enhanced_Resume.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, g, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.outDir, "out", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Write to stdout instead of a file")
	cmd.Flags().StringVarP(&o.template, "template", "t", "", "Path to a custom text/template layout")
	return cmd
}

func runExport(cmd *cobra.Command, g *globalOptions, o *exportOptions, candidateID string) error {
	env, err := g.openSession(cmd, candidateID)
	if err != nil {
		return err
	}
	defer env.close()

	resume := env.session.Projection()
	score := env.session.Score()

	var text string
	if o.template != "" {
		text, err = rendering.TextWithTemplate(resume, score, o.template)
	} else {
		text, err = rendering.Text(resume, score)
	}
	if err != nil {
		return err
	}

	if o.stdout {
		_, err := fmt.Fprint(env.out, text)
		return err
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(o.outDir, rendering.FileName(resume.Name))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if !env.session.Saved() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No saved session for candidate %s; exported the original resume\n", candidateID)
	}
	_, _ = fmt.Fprintf(env.out, "Wrote %s (fitment score %d%%)\n", path, score)
	return nil
}

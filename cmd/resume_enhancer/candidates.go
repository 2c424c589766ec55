package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/resume-enhancer/internal/observability"
	"github.com/spf13/cobra"
)

func newCandidatesCmd(g *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List the candidates in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			provider, _, err := openCatalog(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			candidates := provider.Candidates()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(candidates)
			case cfg.Verbose:
				observability.NewPrinter(out).PrintCandidates(candidates)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tJOB\tFITMENT")
			for _, c := range candidates {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\n", c.ID, c.Name, c.JobID, c.FitmentScore)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

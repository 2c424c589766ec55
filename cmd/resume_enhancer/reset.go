package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <candidate-id>",
		Short: "Discard saved review state for a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.openSession(cmd, args[0])
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.session.Reset(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(env.out, "Reset candidate %s (fitment score %d%%)\n", args[0], env.session.Score())
			return nil
		},
	}
}

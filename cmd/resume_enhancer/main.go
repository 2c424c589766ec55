// Package main provides the entry point for the Resume Enhancer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "resume_enhancer",
		Short: "Resume Enhancer review workflow",
		Long: `Resume Enhancer lets a recruiter review canned enhancement suggestions for a candidate's resume,
accept, reject or edit them, watch the fitment score follow, and save or export the enhanced resume.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
		SilenceUsage: true,
	}

	opts.bind(rootCmd)

	rootCmd.AddCommand(
		newServeCmd(opts),
		newReviewCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
		newCandidatesCmd(opts),
		newTokenCmd(),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

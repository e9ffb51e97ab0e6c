// Package cli provides the Cobra command structure for gomolar.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomolar command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomolar",
		Short: "Parse chemical formulas and compute molar masses",
		Long: `gomolar parses chemical formulas such as Ca(OH)2 or Al2(SO4)3 and
computes their molar mass with a per-element breakdown.

It names common compounds, converts between grams and moles, keeps a short
history of calculations, and evaluates whole files of formulas in parallel.
Invalid formulas are reported with the position of the offending character.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCalcCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newElementsCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newInteractiveCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpRenderer().apply(rootCmd)

	return rootCmd
}

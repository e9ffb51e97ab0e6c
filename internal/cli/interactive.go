package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/tui"
	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/config"
)

func newInteractiveCommand() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Start the live molar mass calculator",
		Long: `Start a terminal calculator that recomputes the molar mass as you type.
Invalid formulas are marked with a caret under the offending character.
Press enter to save the current formula to the history and esc to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(cmd, &config.Config{NoHistory: noHistory})
			if err != nil {
				return err
			}

			return tui.Run(sess.ctx, tui.Options{
				Runner:    batch.New(sess.batchOptions(nil, true)),
				History:   sess.historyStore(),
				Precision: sess.cfg.PrecisionOrDefault(),
				Color:     pretty.IsColorEnabled(string(sess.cfg.Color), cmd.OutOrStdout()),
			})
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not allow saving to the history")

	return cmd
}

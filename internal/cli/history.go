package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/history"
)

// errHistoryDisabled is returned by history commands when history is off.
var errHistoryDisabled = fmt.Errorf("%w: history is disabled (history.enabled: false)", errUsage)

func newHistoryCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and manage recent calculations",
		Long: `Show the most recent calculations made with "gomolar calc", newest
first. Each formula appears once; the number kept is set by history.limit.

Examples:
  gomolar history                # Same as "history list"
  gomolar history remove <id>    # Forget one entry
  gomolar history clear          # Forget everything`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, asJSON)
		},
	}

	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, asJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one entry from the history",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryRemove,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	})

	return cmd
}

// openHistory loads configuration and returns the history store.
func openHistory(cmd *cobra.Command) (*session, *history.Store, error) {
	sess, err := loadSession(cmd, nil)
	if err != nil {
		return nil, nil, err
	}
	store := sess.historyStore()
	if store == nil {
		return nil, nil, errHistoryDisabled
	}
	return sess, store, nil
}

func runHistoryList(cmd *cobra.Command, asJSON bool) error {
	sess, store, err := openHistory(cmd)
	if err != nil {
		return err
	}

	entries, err := store.List(sess.ctx)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if entries == nil {
			entries = []history.Entry{}
		}
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	writeHistory(out, newStyles(sess, cmd), entries, sess.cfg.PrecisionOrDefault())
	return nil
}

func writeHistory(w io.Writer, styles *pretty.Styles, entries []history.Entry, precision int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("No calculations recorded yet."))
		return
	}

	formulaWidth := 0
	for _, entry := range entries {
		formulaWidth = max(formulaWidth, len(entry.Formula))
	}

	for _, entry := range entries {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			styles.Dim.Render(entry.ID),
			styles.Formula.Render(fmt.Sprintf("%-*s", formulaWidth, entry.Formula)),
			styles.Mass.Render(pretty.FormatMass(entry.MolarMass, precision)+" "+pretty.MassUnit),
			styles.Location.Render(entry.Timestamp.Local().Format(time.DateTime)),
		)
	}
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	sess, store, err := openHistory(cmd)
	if err != nil {
		return err
	}

	if err := store.Remove(sess.ctx, args[0]); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return errors.Join(errUsage, err)
		}
		return fmt.Errorf("remove history entry: %w", err)
	}

	sess.logger.Debug("removed history entry", logging.FieldEntryID, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	sess, store, err := openHistory(cmd)
	if err != nil {
		return err
	}

	if err := store.Clear(sess.ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}

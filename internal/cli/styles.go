package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
)

// newStyles returns output styles for the command's stdout, honoring the
// configured color mode.
func newStyles(sess *session, cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), cmd.OutOrStdout()))
}

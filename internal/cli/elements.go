package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/config"
	"github.com/yaklabco/gomolar/pkg/elements"
)

// errUnknownSymbol is returned for element symbols missing from the table.
var errUnknownSymbol = fmt.Errorf("%w: unknown element symbol", errUsage)

func newElementsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "elements [symbol...]",
		Short: "List elements and their atomic masses",
		Long: `List the elements of the active element table with their atomic
number, name, and standard atomic mass. Entries from a custom elements_file
replace or extend the built-in table.

Examples:
  gomolar elements              # All 118 elements
  gomolar elements Na Cl        # Selected elements
  gomolar elements --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElements(cmd, args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")

	return cmd
}

func runElements(cmd *cobra.Command, args []string, format string) error {
	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	selected, err := selectElements(sess.table, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch config.OutputFormat(format) {
	case config.FormatText, "":
		writeElements(out, newStyles(sess, cmd), selected)
		return nil
	case config.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(selected); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case config.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(config.YAMLIndent())
		if err := encoder.Encode(selected); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: unsupported elements format %q (valid: text, json, yaml)", errUsage, format)
	}
}

// selectElements returns the named elements in argument order, or the
// whole table when symbols is empty.
func selectElements(table *elements.Table, symbols []string) ([]elements.Element, error) {
	if len(symbols) == 0 {
		return table.All(), nil
	}

	selected := make([]elements.Element, 0, len(symbols))
	for _, symbol := range symbols {
		elem, ok := table.Lookup(symbol)
		if !ok {
			return nil, fmt.Errorf("%w %q", errUnknownSymbol, symbol)
		}
		selected = append(selected, elem)
	}
	return selected, nil
}

func writeElements(w io.Writer, styles *pretty.Styles, elems []elements.Element) {
	nameWidth := len("NAME")
	for _, elem := range elems {
		nameWidth = max(nameWidth, len(elem.Name))
	}

	header := fmt.Sprintf("%4s  %-6s  %-*s  %s", "NO", "SYMBOL", nameWidth, "NAME", "ATOMIC MASS")
	fmt.Fprintln(w, styles.TableHeader.Render(header))
	fmt.Fprintln(w, styles.TableSeparator.Render(strings.Repeat("-", len(header))))

	for _, elem := range elems {
		number := strconv.Itoa(elem.Number)
		if elem.Number == 0 {
			number = "-"
		}
		fmt.Fprintf(w, "%4s  %s  %-*s  %s\n",
			number,
			styles.Element.Render(fmt.Sprintf("%-6s", elem.Symbol)),
			nameWidth, elem.Name,
			strconv.FormatFloat(elem.AtomicMass, 'f', -1, 64),
		)
	}
}

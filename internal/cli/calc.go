package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/config"
	"github.com/yaklabco/gomolar/pkg/convert"
	"github.com/yaklabco/gomolar/pkg/reporter"
)

type calcFlags struct {
	format    string
	precision int
	breakdown bool
	mass      float64
	moles     float64
	name      bool
	noHistory bool
	compact   bool
}

func newCalcCommand() *cobra.Command {
	flags := &calcFlags{}

	cmd := &cobra.Command{
		Use:   "calc [formula...]",
		Short: "Compute the molar mass of one or more formulas",
		Long:  calcLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, args, flags)
		},
	}

	addCalcFlags(cmd, flags)

	return cmd
}

const calcLongDescription = `Compute the molar mass of one or more chemical formulas.

Whitespace inside a formula is ignored, groups may be nested, and counts
apply to the element or group they follow. When no formula is given and
standard input is not a terminal, formulas are read from it, one per line.

Examples:
  gomolar calc H2O                    # Molar mass with breakdown
  gomolar calc "Ca(OH)2" NaCl CO2     # Several formulas at once
  gomolar calc H2O --mass 36.04       # Grams to moles
  gomolar calc NaCl --moles 0.5       # Moles to grams
  gomolar calc C6H12O6 --format json  # Output as JSON
  echo "Al2(SO4)3" | gomolar calc     # Read from standard input`

func addCalcFlags(cmd *cobra.Command, flags *calcFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, yaml, markdown, html")
	cmd.Flags().IntVar(&flags.precision, "precision", config.DefaultPrecision, "decimals shown for masses")
	cmd.Flags().BoolVar(&flags.breakdown, "breakdown", true, "show the per-element breakdown")
	cmd.Flags().Float64Var(&flags.mass, "mass", 0, "convert this many grams to moles")
	cmd.Flags().Float64Var(&flags.moles, "moles", 0, "convert this many moles to grams")
	cmd.Flags().BoolVar(&flags.name, "name", true, "look up the compound name")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record calculations in the history")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
}

// calcConfig maps explicitly set flags onto a CLI config layer.
func calcConfig(cmd *cobra.Command, flags *calcFlags) *config.Config {
	cfg := &config.Config{NoHistory: flags.noHistory}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = config.Int(flags.precision)
	}
	if cmd.Flags().Changed("breakdown") {
		cfg.ShowBreakdown = config.Bool(flags.breakdown)
	}
	return cfg
}

// conversionRequest returns the conversion selected by --mass or --moles.
func conversionRequest(cmd *cobra.Command, flags *calcFlags) (*convert.Direction, float64, error) {
	massSet := cmd.Flags().Changed("mass")
	molesSet := cmd.Flags().Changed("moles")

	switch {
	case massSet && molesSet:
		return nil, 0, fmt.Errorf("%w: --mass and --moles are mutually exclusive", errUsage)
	case massSet:
		dir := convert.MassToMoles
		return &dir, flags.mass, nil
	case molesSet:
		dir := convert.MolesToMass
		return &dir, flags.moles, nil
	default:
		return nil, 0, nil
	}
}

func runCalc(cmd *cobra.Command, args []string, flags *calcFlags) error {
	direction, amount, err := conversionRequest(cmd, flags)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs, err = readFormulas(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	sess, err := loadSession(cmd, calcConfig(cmd, flags))
	if err != nil {
		return err
	}

	runner := batch.New(sess.batchOptions(nil, flags.name))
	result := runner.EvaluateInputs(inputs)

	if direction != nil {
		if err := attachConversions(result, *direction, amount); err != nil {
			return errors.Join(errUsage, err)
		}
	}

	for _, item := range result.Items {
		if item.Valid() {
			sess.logger.Debug("calculated",
				logging.FieldFormula, item.Parse.Clean,
				logging.FieldMolarMass, item.Mass.TotalMass,
			)
		}
	}

	sess.record(result)

	opts, err := sess.reporterOptions(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	opts.Compact = flags.compact

	return report(cmd, opts, result)
}

// attachConversions converts amount for every valid item.
func attachConversions(result *batch.Result, direction convert.Direction, amount float64) error {
	for idx := range result.Items {
		item := &result.Items[idx]
		if !item.Valid() {
			continue
		}
		conv, err := convert.Convert(direction, amount, item.Mass.TotalMass)
		if err != nil {
			return fmt.Errorf("convert %s: %w", item.Parse.Clean, err)
		}
		item.Conversion = &conv
	}
	return nil
}

// readFormulas reads one formula per line from r. A terminal on standard
// input means nothing was piped, which is a usage error.
func readFormulas(r io.Reader) ([]string, error) {
	if file, ok := r.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return nil, fmt.Errorf("%w: requires at least one formula", errUsage)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}

	lines := batch.ParseLines(content)
	inputs := make([]string, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, line.Text)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no formulas on standard input", errUsage)
	}
	return inputs, nil
}

// report writes result with a reporter built from opts and converts
// invalid formulas into ErrInvalidFormula.
func report(cmd *cobra.Command, opts reporter.Options, result *batch.Result) error {
	rep, err := reporter.New(opts)
	if err != nil {
		return errors.Join(errUsage, fmt.Errorf("create reporter: %w", err))
	}

	invalid, err := rep.Report(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	if invalid > 0 {
		return ErrInvalidFormula
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/pkg/convert"
)

func newConvertCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert <mass-to-moles|moles-to-mass> <formula> <amount>",
		Short: "Convert between grams and moles of a compound",
		Long: `Convert an amount of a compound between grams and moles using its
molar mass.

Directions may be abbreviated: "mass" or "g" for mass-to-moles, "moles" or
"mol" for moles-to-mass.

Examples:
  gomolar convert mass-to-moles H2O 36.04   # 36.04 g of water in moles
  gomolar convert mol NaCl 0.5              # 0.5 mol of salt in grams
  gomolar convert g CO2 10 --json           # Machine-readable result`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the conversion as JSON")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, asJSON bool) error {
	direction, err := convert.ParseDirection(args[0])
	if err != nil {
		return errors.Join(errUsage, err)
	}

	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid amount %q", errUsage, args[2])
	}

	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	parsed := sess.parser.Parse(args[1])
	if !parsed.Valid {
		styles := newStyles(sess, cmd)
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatParseError(args[1], parsed.Err))
		return ErrInvalidFormula
	}

	mass := sess.calc.Calculate(parsed.Elements)
	conv, err := convert.Convert(direction, amount, mass.TotalMass)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(conv); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, conv.String())
	return nil
}

package pretty

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// FormatMass formats a mass with a fixed number of decimals and
// thousands grouping, e.g. "1,234.57".
func FormatMass(value float64, precision int) string {
	return printer().Sprint(number.Decimal(value, number.Scale(precision)))
}

// FormatPercent formats a percentage with two decimals, e.g. "11.19%".
func FormatPercent(value float64) string {
	return printer().Sprint(number.Decimal(value, number.Scale(2))) + "%"
}

// FormatCount formats an integer with thousands grouping.
func FormatCount(value int) string {
	return printer().Sprint(number.Decimal(value))
}

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// DisplayMass formats a molar mass at the requested precision. The exact
// sum is re-rounded, so precision 2 matches mass.TotalMass.
func DisplayMass(mass molarmass.Result, precision int) string {
	return FormatMass(molarmass.Round(mass.Unrounded(), precision), precision)
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// MassUnit is the unit printed after molar masses.
const MassUnit = "g/mol"

// ItemOptions controls how a single evaluated formula is rendered.
type ItemOptions struct {
	// Precision is the number of decimals shown for masses.
	Precision int

	// Breakdown adds one line per element.
	Breakdown bool
}

// FormatItem formats an evaluated formula for terminal output.
func (s *Styles) FormatItem(item batch.Item, opts ItemOptions) string {
	var builder strings.Builder

	if item.Source != "" {
		builder.WriteString(s.Location.Render(item.Source+":"+strconv.Itoa(item.Line)) + "  ")
	}

	if !item.Valid() {
		builder.WriteString(s.Error.Render("error") + "  " + s.Message.Render(item.Parse.ErrorMessage()) + "\n")
		if item.Parse.Err != nil && item.Parse.Err.HasPosition() {
			builder.WriteString(s.FormatSourceContext(item.Input, CaretColumn(item.Input, item.Parse.Err.Position)))
		}
		return builder.String()
	}

	builder.WriteString(s.Formula.Render(item.Parse.Clean))
	builder.WriteString("  ")
	builder.WriteString(s.Mass.Render(DisplayMass(item.Mass, opts.Precision) + " " + MassUnit))
	if item.Compound != nil {
		builder.WriteString("  " + s.Compound.Render(item.Compound.DisplayName()))
	}
	builder.WriteString("\n")

	if opts.Breakdown {
		builder.WriteString(s.FormatBreakdownLines(item.Mass))
	}

	return builder.String()
}

// FormatBreakdownLines formats one indented line per element, e.g.
// "  H   Hydrogen   2 × 1.008 = 2.016   (11.19%)".
func (s *Styles) FormatBreakdownLines(mass molarmass.Result) string {
	if len(mass.Breakdown) == 0 {
		return ""
	}

	symbolWidth, nameWidth := 0, 0
	for _, calc := range mass.Breakdown {
		symbolWidth = max(symbolWidth, len(calc.Element))
		nameWidth = max(nameWidth, len(calc.ElementName))
	}

	var builder strings.Builder
	for i, calc := range mass.Breakdown {
		symbol := fmt.Sprintf("%-*s", symbolWidth, calc.Element)
		name := fmt.Sprintf("%-*s", nameWidth, calc.ElementName)
		arithmetic := fmt.Sprintf("%d × %s = %s",
			calc.Count,
			strconv.FormatFloat(calc.AtomicMass, 'f', -1, 64),
			strconv.FormatFloat(molarmass.Round(calc.Subtotal, 3), 'f', -1, 64),
		)
		builder.WriteString("  " + s.Element.Render(symbol) + "  " + name + "  " + arithmetic +
			"  " + s.Dim.Render("("+FormatPercent(mass.Percent(i))+")") + "\n")
	}
	return builder.String()
}

// FormatParseError formats a parse failure with the input and a caret under
// the offending character when the error has a position.
func (s *Styles) FormatParseError(input string, err *formula.ParseError) string {
	if err == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.Error.Render("error") + "  " + s.Message.Render(err.Error()) + "  " +
		s.Dim.Render("("+err.Kind.String()+")") + "\n")
	if err.HasPosition() {
		builder.WriteString(s.FormatSourceContext(input, CaretColumn(input, err.Position)))
	}
	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
// column is 1-based.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// CaretColumn converts a position in the whitespace-stripped formula into
// the 1-based display column of the same character in raw.
func CaretColumn(raw string, pos int) int {
	idx := formula.RawIndex(raw, pos)
	return utf8.RuneCountInString(raw[:idx]) + 1
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// Table formatting constants.
const (
	tablePadding      = 2
	minSourceWidth    = 12
	minFormulaWidth   = 10
	minMassWidth      = 10
	minDetailWidth    = 20
	breakdownColumns  = 6 // ELEMENT, NAME, COUNT, ATOMIC MASS, SUBTOTAL, %
	batchColumnCount  = 4 // SOURCE, FORMULA, MASS, DETAIL
	heavySeparator    = "="
	lightSeparator    = "-"
	percentColumnSize = 8
)

// TableFormatter formats results as styled, column-aligned tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	precision    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth, precision int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		precision:    precision,
	}
}

// BreakdownRow is one element row in a breakdown table.
type BreakdownRow struct {
	Element    string
	Name       string
	Count      string
	AtomicMass string
	Subtotal   string
	Percent    string
}

type breakdownWidths struct {
	element, name, count, atomic, subtotal int
}

// FormatBreakdown formats a molar mass as a per-element table with a total row.
func (t *TableFormatter) FormatBreakdown(mass molarmass.Result) string {
	if len(mass.Breakdown) == 0 {
		return ""
	}

	rows := make([]BreakdownRow, 0, len(mass.Breakdown))
	for i, calc := range mass.Breakdown {
		rows = append(rows, BreakdownRow{
			Element:    calc.Element,
			Name:       calc.ElementName,
			Count:      FormatCount(calc.Count),
			AtomicMass: strconv.FormatFloat(calc.AtomicMass, 'f', -1, 64),
			Subtotal:   FormatMass(calc.Subtotal, t.precision+1),
			Percent:    FormatPercent(mass.Percent(i)),
		})
	}

	widths := breakdownWidths{
		element: len("ELEMENT"),
		name:    len("NAME"),
		count:   len("COUNT"),
		atomic:  len("ATOMIC MASS"),
		subtotal: max(len("SUBTOTAL"),
			len(DisplayMass(mass, t.precision))),
	}
	for _, row := range rows {
		widths.element = max(widths.element, len(row.Element))
		widths.name = max(widths.name, len(row.Name))
		widths.count = max(widths.count, len(row.Count))
		widths.atomic = max(widths.atomic, len(row.AtomicMass))
		widths.subtotal = max(widths.subtotal, len(row.Subtotal))
	}

	total := widths.element + widths.name + widths.count + widths.atomic + widths.subtotal +
		percentColumnSize + tablePadding*breakdownColumns

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %*s",
		widths.element, "ELEMENT",
		widths.name, "NAME",
		widths.count, "COUNT",
		widths.atomic, "ATOMIC MASS",
		widths.subtotal, "SUBTOTAL",
		percentColumnSize, "%",
	)
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.separator(total, heavySeparator) + "\n")

	for _, row := range rows {
		line := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %*s",
			widths.element, row.Element,
			widths.name, row.Name,
			widths.count, row.Count,
			widths.atomic, row.AtomicMass,
			widths.subtotal, row.Subtotal,
			percentColumnSize, row.Percent,
		)
		builder.WriteString(line + "\n")
	}

	builder.WriteString(t.separator(total, lightSeparator) + "\n")

	totalLabel := fmt.Sprintf(" %-*s  %*s  %*s",
		widths.element+widths.name+widths.count+widths.atomic+tablePadding*3, "TOTAL ("+MassUnit+")",
		widths.subtotal, DisplayMass(mass, t.precision),
		percentColumnSize, FormatPercent(100),
	)
	builder.WriteString(t.styles.Bold.Render(totalLabel) + "\n")

	return builder.String()
}

type batchWidths struct {
	source, formula, mass, detail int
}

// FormatTable formats a batch result as one row per formula.
func (t *TableFormatter) FormatTable(result *batch.Result) string {
	if result == nil || len(result.Items) == 0 {
		return ""
	}

	widths := t.calculateBatchWidths(result.Items)
	total := widths.source + widths.formula + widths.mass + widths.detail + tablePadding*batchColumnCount

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %*s  %-*s",
		widths.source, "SOURCE",
		widths.formula, "FORMULA",
		widths.mass, "MASS ("+MassUnit+")",
		widths.detail, "NAME / ERROR",
	)
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.separator(total, heavySeparator) + "\n")

	previous := ""
	for i, item := range result.Items {
		if i > 0 && item.Source != previous {
			builder.WriteString(t.separator(total, lightSeparator) + "\n")
		}
		previous = item.Source

		builder.WriteString(t.formatBatchRow(item, widths) + "\n")
	}

	builder.WriteString(t.separator(total, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

func (t *TableFormatter) formatBatchRow(item batch.Item, widths batchWidths) string {
	source := truncateFilePath(itemSource(item), widths.source)
	input := truncateString(itemFormula(item), widths.formula)

	if !item.Valid() {
		content := fmt.Sprintf(" %-*s  %-*s  %*s  %-*s",
			widths.source, source,
			widths.formula, input,
			widths.mass, "-",
			widths.detail, truncateString(item.Parse.ErrorMessage(), widths.detail),
		)
		return t.styles.TableErrorRow.Render(content)
	}

	detail := ""
	if item.Compound != nil {
		detail = item.Compound.DisplayName()
	}

	return fmt.Sprintf(" %-*s  %-*s  %*s  %-*s",
		widths.source, source,
		widths.formula, input,
		widths.mass, DisplayMass(item.Mass, t.precision),
		widths.detail, truncateString(detail, widths.detail),
	)
}

func (t *TableFormatter) calculateBatchWidths(items []batch.Item) batchWidths {
	widths := batchWidths{
		source:  minSourceWidth,
		formula: minFormulaWidth,
		mass:    minMassWidth,
		detail:  minDetailWidth,
	}

	for _, item := range items {
		widths.source = max(widths.source, len(itemSource(item)))
		widths.formula = max(widths.formula, len(itemFormula(item)))
		if item.Valid() {
			widths.mass = max(widths.mass, len(DisplayMass(item.Mass, t.precision)))
			if item.Compound != nil {
				widths.detail = max(widths.detail, len(item.Compound.DisplayName()))
			}
		} else {
			widths.detail = max(widths.detail, len(item.Parse.ErrorMessage()))
		}
	}

	// Constrain to terminal width, shrinking the detail column first.
	totalWidth := widths.source + widths.formula + widths.mass + widths.detail + tablePadding*batchColumnCount
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.detail = max(minDetailWidth, widths.detail-excess)

		totalWidth = widths.source + widths.formula + widths.mass + widths.detail + tablePadding*batchColumnCount
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.source = max(minSourceWidth, widths.source-excess)
		}
	}

	return widths
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: rows with \"-\" mass failed to parse")
	}

	errorSample := t.styles.TableErrorRow.Render(" invalid ")
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = formula failed to parse", errorSample))
}

func itemSource(item batch.Item) string {
	if item.Source == "" {
		return "#" + strconv.Itoa(item.Line)
	}
	return item.Source + ":" + strconv.Itoa(item.Line)
}

func itemFormula(item batch.Item) string {
	if item.Parse.Clean != "" {
		return item.Parse.Clean
	}
	return item.Input
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

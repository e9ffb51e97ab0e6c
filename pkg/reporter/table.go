package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
)

// TableReporter formats results as styled, column-aligned tables.
// A single formula gets its per-element breakdown; several formulas get
// one row each.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer), opts.Precision),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *batch.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Items) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No formulas to evaluate."))
		}
		return 0, nil
	}

	if len(result.Items) == 1 && !isBatch(result) {
		r.reportSingle(result.Items[0])
		return result.Stats.FormulasInvalid, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(result))

	for _, ferr := range result.Errors {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.Location.Render(ferr.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", ferr.Err)),
		)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FormulasInvalid, nil
}

// reportSingle prints one formula with its breakdown table.
func (r *TableReporter) reportSingle(item batch.Item) {
	if !item.Valid() {
		fmt.Fprint(r.bw, r.styles.FormatParseError(item.Input, item.Parse.Err))
		return
	}

	heading := r.styles.Formula.Render(item.Parse.Clean)
	if item.Compound != nil {
		heading += "  " + r.styles.Compound.Render(item.Compound.DisplayName())
	}
	fmt.Fprintln(r.bw, heading)
	fmt.Fprint(r.bw, r.formatter.FormatBreakdown(item.Mass))

	if item.Conversion != nil {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(item.Conversion.String()))
	}
}

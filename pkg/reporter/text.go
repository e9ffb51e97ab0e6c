package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *batch.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || (len(result.Items) == 0 && len(result.Errors) == 0) {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No formulas to evaluate."))
		}
		return 0, nil
	}

	itemOpts := pretty.ItemOptions{
		Precision: r.opts.Precision,
		Breakdown: r.opts.ShowBreakdown,
	}

	for idx, item := range result.Items {
		if idx > 0 && r.opts.ShowBreakdown {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatItem(item, itemOpts))
		if item.Conversion != nil {
			fmt.Fprintln(r.bw, "  "+r.styles.Bold.Render(item.Conversion.String()))
		}
	}

	for _, ferr := range result.Errors {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.Location.Render(ferr.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", ferr.Err)),
		)
	}

	if r.opts.ShowSummary && isBatch(result) {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FormulasInvalid, nil
}

// isBatch reports whether the result holds more than a single formula, in
// which case a summary line is useful.
func isBatch(result *batch.Result) bool {
	return len(result.Items) > 1 || result.Stats.FilesDiscovered > 0
}

package reporter

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
)

// MarkdownRenderer writes a Document as GitHub-flavored Markdown.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates a new Markdown renderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(_ context.Context, doc *Document) error {
	if _, err := r.opts.Writer.Write(markdownDocument(doc, r.opts)); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// markdownDocument renders doc as Markdown. The HTML renderer converts the
// same text, so both formats stay in step.
func markdownDocument(doc *Document, opts Options) []byte {
	var buf bytes.Buffer

	title := opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}
	fmt.Fprintf(&buf, "# %s\n\n", escapeMarkdown(title))

	if len(doc.Results) == 0 {
		buf.WriteString("No formulas to evaluate.\n")
	} else {
		writeResultsTable(&buf, doc, opts.Precision)
	}

	if invalid := invalidResults(doc); len(invalid) > 0 {
		buf.WriteString("\n## Errors\n\n")
		for _, res := range invalid {
			fmt.Fprintf(&buf, "- %s `%s`: %s\n",
				escapeMarkdown(resultLocation(res)), codeSpan(res.Input), escapeMarkdown(res.Error.Message))
		}
	}

	if len(doc.Errors) > 0 {
		buf.WriteString("\n## Unreadable files\n\n")
		for _, ferr := range doc.Errors {
			fmt.Fprintf(&buf, "- `%s`: %s\n", codeSpan(ferr.Path), escapeMarkdown(ferr.Message))
		}
	}

	if opts.ShowBreakdown {
		for _, res := range doc.Results {
			if !res.Valid || len(res.Breakdown) == 0 {
				continue
			}
			writeBreakdown(&buf, res, opts.Precision)
		}
	}

	if opts.ShowSummary {
		fmt.Fprintf(&buf, "\n**Summary:** %d formulas, %d valid, %d invalid",
			doc.Summary.FormulasTotal, doc.Summary.FormulasValid, doc.Summary.FormulasInvalid)
		if doc.Summary.FilesDiscovered > 0 {
			fmt.Fprintf(&buf, " in %d files", doc.Summary.FilesDiscovered)
		}
		buf.WriteString(".\n")
	}

	return buf.Bytes()
}

func writeResultsTable(buf *bytes.Buffer, doc *Document, precision int) {
	buf.WriteString("| Source | Formula | Molar mass (" + pretty.MassUnit + ") | Name |\n")
	buf.WriteString("| --- | --- | ---: | --- |\n")

	for _, res := range doc.Results {
		mass := "-"
		name := ""
		if res.Valid {
			mass = pretty.FormatMass(res.TotalMass, precision)
			name = res.Name
		} else {
			name = "_invalid_"
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n",
			escapeMarkdown(resultLocation(res)), escapeMarkdown(resultFormula(res)), mass, escapeMarkdown(name))
	}
}

func writeBreakdown(buf *bytes.Buffer, res FormulaReport, precision int) {
	heading := res.Formula
	if res.Name != "" {
		heading += " (" + res.Name + ")"
	}
	fmt.Fprintf(buf, "\n## %s\n\n", escapeMarkdown(heading))
	buf.WriteString("| Element | Name | Count | Atomic mass | Subtotal | % |\n")
	buf.WriteString("| --- | --- | ---: | ---: | ---: | ---: |\n")

	for _, el := range res.Breakdown {
		fmt.Fprintf(buf, "| %s | %s | %s | %s | %s | %s |\n",
			el.Element,
			escapeMarkdown(el.ElementName),
			pretty.FormatCount(el.Count),
			strconv.FormatFloat(el.AtomicMass, 'f', -1, 64),
			pretty.FormatMass(el.Subtotal, precision+1),
			pretty.FormatPercent(el.Percent),
		)
	}
	fmt.Fprintf(buf, "| **Total** | | | | **%s** | |\n", pretty.FormatMass(res.TotalMass, precision))

	if res.Conversion != nil {
		fmt.Fprintf(buf, "\nConversion: %s\n", escapeMarkdown(res.Conversion.String()))
	}
}

func invalidResults(doc *Document) []FormulaReport {
	var invalid []FormulaReport
	for _, res := range doc.Results {
		if !res.Valid && res.Error != nil {
			invalid = append(invalid, res)
		}
	}
	return invalid
}

func resultLocation(res FormulaReport) string {
	if res.Source == "" {
		return "#" + strconv.Itoa(res.Line)
	}
	return res.Source + ":" + strconv.Itoa(res.Line)
}

func resultFormula(res FormulaReport) string {
	if res.Formula != "" {
		return res.Formula
	}
	return res.Input
}

//nolint:gochecknoglobals // Read-only replacer.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"[", `\[`,
	"]", `\]`,
)

// escapeMarkdown escapes characters with inline meaning in Markdown tables.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpan makes s safe inside a single-backtick code span.
func codeSpan(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

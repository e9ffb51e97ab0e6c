// Package reporter formats molar mass results for terminals, files, and
// other programs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomolar/pkg/batch"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes molar mass results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of invalid formulas reported and any write errors.
	Report(ctx context.Context, result *batch.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer  Renderer
	breakdown bool
}

// Report implements Reporter by building a Document and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *batch.Result) (int, error) {
	doc := BuildDocument(result, f.breakdown)
	if err := f.renderer.Render(ctx, doc); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return doc.Summary.FormulasInvalid, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer:  renderer,
		breakdown: opts.ShowBreakdown,
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	var rep Reporter
	switch format {
	case FormatText:
		rep = NewTextReporter(opts)
	case FormatTable:
		rep = NewTableReporter(opts)
	case FormatJSON:
		rep = newRendererFacade(NewJSONRenderer(opts), opts)
	case FormatYAML:
		rep = newRendererFacade(NewYAMLRenderer(opts), opts)
	case FormatMarkdown:
		rep = newRendererFacade(NewMarkdownRenderer(opts), opts)
	case FormatHTML:
		rep = newRendererFacade(NewHTMLRenderer(opts), opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if opts.WorkingDir != "" {
		rep = &relativeReporter{next: rep, workDir: opts.WorkingDir}
	}
	return rep, nil
}

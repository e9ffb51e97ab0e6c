package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Precision is the number of decimals shown for molar masses in
	// human-readable formats. Structured formats carry the rounded total.
	Precision int

	// ShowBreakdown includes the per-element breakdown.
	ShowBreakdown bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Title heads Markdown and HTML reports.
	Title string

	// WorkingDir is used to compute relative paths for file sources.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:        os.Stdout,
		Format:        FormatText,
		Color:         "auto",
		Precision:     2,
		ShowBreakdown: true,
		ShowSummary:   true,
		Title:         "Molar mass report",
	}
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomolar/pkg/batch"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 formulas (10 valid, 2 invalid) in 3 files".
func (s *Styles) FormatSummaryOneLine(stats batch.Stats) string {
	if stats.FormulasTotal == 0 {
		return s.Dim.Render(fmt.Sprintf("No formulas found (%d %s checked)",
			stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))) + "\n"
	}

	var parts []string

	counts := []string{s.Success.Render(fmt.Sprintf("%d valid", stats.FormulasValid))}
	if stats.FormulasInvalid > 0 {
		counts = append(counts, s.Error.Render(fmt.Sprintf("%d invalid", stats.FormulasInvalid)))
	}
	parts = append(parts, fmt.Sprintf("%d %s (%s)",
		stats.FormulasTotal, plural(stats.FormulasTotal, "formula", "formulas"), strings.Join(counts, ", ")))

	if stats.FilesDiscovered > 0 {
		parts = append(parts, fmt.Sprintf("in %d %s",
			stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

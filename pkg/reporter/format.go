package reporter

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}
}

// ParseFormat parses a format string, returning an error for unknown formats.
// "md" and "yml" are accepted as aliases.
func ParseFormat(formatStr string) (Format, error) {
	switch strings.ToLower(formatStr) {
	case "text", "":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, yaml, markdown, html", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// IsStructured reports whether the format is machine-readable.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

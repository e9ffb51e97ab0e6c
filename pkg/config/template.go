package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. If false, the
	// template is commented out so it changes nothing until edited.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	if opts.Full {
		buf.WriteString("#\n# Every setting is listed with its default value.\n\n")
	} else {
		buf.WriteString("#\n# Uncomment and modify settings as needed.\n\n")
	}

	for _, section := range templateSections() {
		for _, line := range strings.Split(section, "\n") {
			buf.WriteString(templateLine(line, opts.Full))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// templateLine renders one template line. Lines starting with "##" are
// documentation and always stay commented; settings are commented out in
// the minimal template.
func templateLine(line string, full bool) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	switch {
	case line == "":
		return ""
	case strings.HasPrefix(trimmed, "## "):
		return indent + "# " + strings.TrimPrefix(trimmed, "## ")
	case full:
		return line
	default:
		return "# " + line
	}
}

func templateSections() []string {
	return []string{
		fmt.Sprintf(`## Output format: %s
format: %s`, joinFormats(), FormatText),

		fmt.Sprintf(`## Decimal places shown for molar masses (0-%d)
precision: %d`, MaxPrecision, DefaultPrecision),

		`## Show the per-element breakdown in text output
show_breakdown: true`,

		`## Additional element table (YAML or TOML) overlaid on the periodic table
elements_file: ""`,

		`## Parser bounds (0 = built-in default)
parser:
  max_count: 9999
  max_depth: 16
  max_atoms: 1000000`,

		fmt.Sprintf(`## Calculation history
history:
  enabled: true
  limit: %d`, DefaultHistoryLimit),

		fmt.Sprintf(`## Batch evaluation of formula files
batch:
  ## Number of parallel workers (0 = auto based on CPU cores)
  jobs: 0
  patterns:
    - "%s"
  exclude:
    - "vendor/**"`, DefaultFormulaPattern),
	}
}

// templateToJSON renders the full template as JSON. JSON has no comments,
// so every setting is written with its default value.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"format":         FormatText,
		"precision":      DefaultPrecision,
		"show_breakdown": true,
		"elements_file":  "",
		"parser": map[string]any{
			"max_count": 9999,
			"max_depth": 16,
			"max_atoms": 1000000,
		},
		"history": map[string]any{
			"enabled": true,
			"limit":   DefaultHistoryLimit,
		},
		"batch": map[string]any{
			"jobs":     0,
			"patterns": []string{DefaultFormulaPattern},
			"exclude":  []string{"vendor/**"},
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

func joinFormats() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomolar configuration
# See: https://github.com/yaklabco/gomolar`
}

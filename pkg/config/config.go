// Package config defines core configuration types for gomolar.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"os"
	"path/filepath"
)

// Defaults.
const (
	// DefaultPrecision is the number of decimals shown for molar masses.
	DefaultPrecision = 2

	// MaxPrecision bounds the configurable display precision.
	MaxPrecision = 10

	// DefaultHistoryLimit is the number of history entries retained.
	DefaultHistoryLimit = 20

	// DefaultFormulaPattern selects formula files during batch discovery.
	DefaultFormulaPattern = "**/*.formulas"
)

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// IsValid returns true if the format is one gomolar can render.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParserConfig bounds formula parsing. Zero values select the parser defaults.
type ParserConfig struct {
	MaxCount int `yaml:"max_count,omitempty"`
	MaxDepth int `yaml:"max_depth,omitempty"`
	MaxAtoms int `yaml:"max_atoms,omitempty"`
}

// HistoryConfig controls the calculation history file.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Limit   int    `yaml:"limit,omitempty"`
}

// BatchConfig controls batch evaluation of formula files.
type BatchConfig struct {
	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// Patterns are doublestar globs used to discover formula files
	// inside directory arguments.
	Patterns []string `yaml:"patterns,omitempty"`

	// Exclude contains doublestar globs for paths to skip.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Config is the root configuration structure for gomolar.
type Config struct {
	// Format is the default output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Precision is the number of decimals shown for masses. It does not
	// change the rounded total reported by the calculator.
	Precision *int `yaml:"precision,omitempty"`

	// ShowBreakdown prints the per-element breakdown in text output.
	ShowBreakdown *bool `yaml:"show_breakdown,omitempty"`

	// ElementsFile is an optional YAML or TOML element table overlaid on
	// the built-in periodic table.
	ElementsFile string `yaml:"elements_file,omitempty"`

	Parser  ParserConfig  `yaml:"parser,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Batch   BatchConfig   `yaml:"batch,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color selects styled output.
	Color ColorMode `yaml:"-"`

	// NoHistory disables history recording for a single invocation.
	NoHistory bool `yaml:"-"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Format:        FormatText,
		Precision:     Int(DefaultPrecision),
		ShowBreakdown: Bool(true),
		History: HistoryConfig{
			Enabled: Bool(true),
			Limit:   DefaultHistoryLimit,
		},
		Batch: BatchConfig{
			Patterns: []string{DefaultFormulaPattern},
		},
		Color: ColorAuto,
	}
}

// PrecisionOrDefault returns the configured precision or DefaultPrecision.
func (c *Config) PrecisionOrDefault() int {
	if c == nil || c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// BreakdownEnabled reports whether text output includes the breakdown.
func (c *Config) BreakdownEnabled() bool {
	if c == nil || c.ShowBreakdown == nil {
		return true
	}
	return *c.ShowBreakdown
}

// HistoryEnabled reports whether calculations are recorded.
func (c *Config) HistoryEnabled() bool {
	if c == nil || c.NoHistory {
		return false
	}
	if c.History.Enabled == nil {
		return true
	}
	return *c.History.Enabled
}

// HistoryLimit returns the configured history limit or DefaultHistoryLimit.
func (c *Config) HistoryLimit() int {
	if c == nil || c.History.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return c.History.Limit
}

// HistoryPath returns the configured history path or DefaultHistoryPath.
func (c *Config) HistoryPath() string {
	if c == nil || c.History.Path == "" {
		return DefaultHistoryPath()
	}
	return c.History.Path
}

// DefaultHistoryPath returns $XDG_STATE_HOME/gomolar/history.json, falling
// back to ~/.local/state/gomolar/history.json.
func DefaultHistoryPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "gomolar", "history.json")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "gomolar", "history.json")
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

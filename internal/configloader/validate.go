package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gomolar/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "parser.max_count").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., a missing elements file).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColorModes lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Format, formatList()))
	}

	if cfg.Precision != nil && (*cfg.Precision < 0 || *cfg.Precision > config.MaxPrecision) {
		result.addError("precision", *cfg.Precision,
			fmt.Sprintf("precision must be between 0 and %d", config.MaxPrecision))
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	validateNonNegative(result, "parser.max_count", cfg.Parser.MaxCount)
	validateNonNegative(result, "parser.max_depth", cfg.Parser.MaxDepth)
	validateNonNegative(result, "parser.max_atoms", cfg.Parser.MaxAtoms)
	validateNonNegative(result, "history.limit", cfg.History.Limit)
	validateNonNegative(result, "batch.jobs", cfg.Batch.Jobs)

	validatePatterns(result, "batch.patterns", cfg.Batch.Patterns)
	validatePatterns(result, "batch.exclude", cfg.Batch.Exclude)

	if cfg.ElementsFile != "" {
		if _, err := os.Stat(cfg.ElementsFile); err != nil {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "elements_file",
				Value:   cfg.ElementsFile,
				Message: fmt.Sprintf("elements file %q is not readable; using the built-in table", cfg.ElementsFile),
			})
		}
	}

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func validateNonNegative(result *ValidationResult, field string, value int) {
	if value < 0 {
		result.addError(field, value, field+" must be >= 0 (0 means default)")
	}
}

// validatePatterns checks that patterns are valid doublestar globs.
func validatePatterns(result *ValidationResult, field string, patterns []string) {
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern")
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}

func formatList() string {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomolar/pkg/config"
)

// envVarPrefix is the prefix for all gomolar environment variables.
const envVarPrefix = "GOMOLAR_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":          {"format", envTypeString, "Output format: text, table, json, yaml, markdown, or html"},
	"PRECISION":       {"precision", envTypeInt, "Decimal places shown for molar masses"},
	"SHOW_BREAKDOWN":  {"show_breakdown", envTypeBool, "Show the per-element breakdown: true or false"},
	"ELEMENTS_FILE":   {"elements_file", envTypeString, "Additional element table (YAML or TOML)"},
	"MAX_COUNT":       {"parser.max_count", envTypeInt, "Largest count accepted after a symbol or group"},
	"MAX_DEPTH":       {"parser.max_depth", envTypeInt, "Deepest group nesting accepted"},
	"MAX_ATOMS":       {"parser.max_atoms", envTypeInt, "Largest per-element count after group multipliers"},
	"HISTORY_ENABLED": {"history.enabled", envTypeBool, "Record calculations: true or false"},
	"HISTORY_PATH":    {"history.path", envTypeString, "Path of the history file"},
	"HISTORY_LIMIT":   {"history.limit", envTypeInt, "Number of history entries retained"},
	"JOBS":            {"batch.jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"PATTERNS":        {"batch.patterns", envTypeSlice, "Comma-separated formula file patterns"},
	"EXCLUDE":         {"batch.exclude", envTypeSlice, "Comma-separated exclude patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMOLAR_ (e.g., GOMOLAR_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "elements_file":
		cfg.ElementsFile = value
	case "history.path":
		cfg.History.Path = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "show_breakdown":
		cfg.ShowBreakdown = config.Bool(value)
	case "history.enabled":
		cfg.History.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "precision":
		cfg.Precision = config.Int(value)
	case "parser.max_count":
		cfg.Parser.MaxCount = value
	case "parser.max_depth":
		cfg.Parser.MaxDepth = value
	case "parser.max_atoms":
		cfg.Parser.MaxAtoms = value
	case "history.limit":
		cfg.History.Limit = value
	case "batch.jobs":
		cfg.Batch.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "batch.patterns":
		cfg.Batch.Patterns = value
	case "batch.exclude":
		cfg.Batch.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

package configloader

import "github.com/yaklabco/gomolar/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil, so an
//     explicit false or 0 still wins
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Precision != nil {
		result.Precision = override.Precision
	}
	if override.ShowBreakdown != nil {
		result.ShowBreakdown = override.ShowBreakdown
	}
	if override.ElementsFile != "" {
		result.ElementsFile = override.ElementsFile
	}

	if override.Parser.MaxCount != 0 {
		result.Parser.MaxCount = override.Parser.MaxCount
	}
	if override.Parser.MaxDepth != 0 {
		result.Parser.MaxDepth = override.Parser.MaxDepth
	}
	if override.Parser.MaxAtoms != 0 {
		result.Parser.MaxAtoms = override.Parser.MaxAtoms
	}

	if override.History.Enabled != nil {
		result.History.Enabled = override.History.Enabled
	}
	if override.History.Path != "" {
		result.History.Path = override.History.Path
	}
	if override.History.Limit != 0 {
		result.History.Limit = override.History.Limit
	}

	if override.Batch.Jobs != 0 {
		result.Batch.Jobs = override.Batch.Jobs
	}
	if override.Batch.Patterns != nil {
		result.Batch.Patterns = override.Batch.Patterns
	}
	if override.Batch.Exclude != nil {
		result.Batch.Exclude = override.Batch.Exclude
	}

	// CLI-only fields.
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.NoHistory {
		result.NoHistory = true
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

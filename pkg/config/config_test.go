package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.DefaultPrecision, cfg.PrecisionOrDefault())
	assert.True(t, cfg.BreakdownEnabled())
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, config.DefaultHistoryLimit, cfg.HistoryLimit())
	assert.Equal(t, []string{config.DefaultFormulaPattern}, cfg.Batch.Patterns)
	assert.Equal(t, config.ColorAuto, cfg.Color)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range config.Formats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}

func TestConfig_Accessors(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		assert.Equal(t, config.DefaultPrecision, cfg.PrecisionOrDefault())
		assert.True(t, cfg.BreakdownEnabled())
		assert.False(t, cfg.HistoryEnabled())
		assert.Equal(t, config.DefaultHistoryLimit, cfg.HistoryLimit())
	})

	t.Run("zero precision is honored", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Precision: config.Int(0)}
		assert.Equal(t, 0, cfg.PrecisionOrDefault())
	})

	t.Run("no history overrides enabled", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{History: config.HistoryConfig{Enabled: config.Bool(true)}, NoHistory: true}
		assert.False(t, cfg.HistoryEnabled())
	})

	t.Run("explicit history path", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{History: config.HistoryConfig{Path: "/var/lib/gomolar.json"}}
		assert.Equal(t, "/var/lib/gomolar.json", cfg.HistoryPath())
	})
}

func TestDefaultHistoryPath(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	assert.Equal(t, filepath.Join(stateHome, "gomolar", "history.json"), config.DefaultHistoryPath())

	cfg := &config.Config{}
	require.Equal(t, config.DefaultHistoryPath(), cfg.HistoryPath())
}

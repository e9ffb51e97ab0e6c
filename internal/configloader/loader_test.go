package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomolar/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if got := result.Config.PrecisionOrDefault(); got != config.DefaultPrecision {
		t.Errorf("expected precision %d, got %d", config.DefaultPrecision, got)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// A VCS root stops the upward search inside the temp dir.
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, ".gomolar.yml"), `
format: table
precision: 3
show_breakdown: false
elements_file: isotopes.yaml
batch:
  jobs: 2
`)

	subDir := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Format != config.FormatTable {
		t.Errorf("expected format table, got %q", cfg.Format)
	}
	if cfg.PrecisionOrDefault() != 3 {
		t.Errorf("expected precision 3, got %d", cfg.PrecisionOrDefault())
	}
	if cfg.BreakdownEnabled() {
		t.Error("expected show_breakdown false to override the default")
	}
	if cfg.Batch.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", cfg.Batch.Jobs)
	}
	if want := filepath.Join(tmpDir, "isotopes.yaml"); cfg.ElementsFile != want {
		t.Errorf("expected elements_file %q, got %q", want, cfg.ElementsFile)
	}
	if len(result.LoadedFrom) != 1 || result.Paths.Project == "" {
		t.Errorf("expected project config to be loaded, got %v", result.LoadedFrom)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "elements_file") {
		t.Errorf("expected missing elements file warning, got %v", result.Warnings)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, ".gomolar.yml"), "format: table\nprecision: 3\n")

	explicitPath := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicitPath, "format: json\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicitPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected explicit format json, got %q", result.Config.Format)
	}
	if result.Config.PrecisionOrDefault() != 3 {
		t.Errorf("expected project precision to survive, got %d", result.Config.PrecisionOrDefault())
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicitPath {
		t.Errorf("expected project then explicit, got %v", result.LoadedFrom)
	}
}

func TestLoad_EnvAndCLIPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, ".gomolar.yml"), "format: table\nprecision: 3\n")

	t.Setenv("GOMOLAR_FORMAT", "yaml")
	t.Setenv("GOMOLAR_PRECISION", "5")
	t.Setenv("GOMOLAR_HISTORY_ENABLED", "false")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Format: config.FormatMarkdown}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatMarkdown {
		t.Errorf("expected CLI format markdown, got %q", result.Config.Format)
	}
	if result.Config.PrecisionOrDefault() != 5 {
		t.Errorf("expected env precision 5, got %d", result.Config.PrecisionOrDefault())
	}
	if result.Config.HistoryEnabled() {
		t.Error("expected env to disable history")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad format", "format: sarif\n", "format"},
		{"precision too large", "precision: 42\n", "precision"},
		{"negative jobs", "batch:\n  jobs: -1\n", "batch.jobs"},
		{"bad pattern", "batch:\n  patterns: [\"[\"]\n", "batch.patterns[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.content)

			opts := isolated(t.TempDir())
			opts.IgnoreProjectConfig = true
			opts.ExplicitPath = path

			_, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, verr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "format: [text\n")

	opts := isolated(t.TempDir())
	opts.IgnoreProjectConfig = true
	opts.ExplicitPath = path

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("GOMOLAR_JOBS", "many")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "GOMOLAR_JOBS") {
		t.Fatalf("expected env error naming GOMOLAR_JOBS, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	file := &config.Config{ShowBreakdown: config.Bool(false), Batch: config.BatchConfig{Exclude: []string{"tmp/**"}}}
	cli := &config.Config{Precision: config.Int(0), Color: config.ColorNever, NoHistory: true}

	got := MergeAll(base, file, cli)

	if got.BreakdownEnabled() {
		t.Error("explicit false should override default true")
	}
	if got.PrecisionOrDefault() != 0 {
		t.Errorf("explicit zero precision should win, got %d", got.PrecisionOrDefault())
	}
	if got.Color != config.ColorNever || !got.NoHistory {
		t.Errorf("CLI fields not merged: %+v", got)
	}
	if len(got.Batch.Patterns) != 1 || got.Batch.Exclude[0] != "tmp/**" {
		t.Errorf("unexpected batch config: %+v", got.Batch)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d vars, got %d", len(envMappings), len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("vars not sorted: %s before %s", vars[i-1].Name, vars[i].Name)
		}
	}
	if got := GetEnvVarName("batch.jobs"); got != "GOMOLAR_JOBS" {
		t.Errorf("GetEnvVarName(batch.jobs) = %q", got)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".gomolar.yml"), "format: json\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected search to stop at VCS root, found %q", got)
	}
}

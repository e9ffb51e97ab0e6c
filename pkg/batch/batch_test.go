package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/formula"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseLines(t *testing.T) {
	t.Parallel()

	lines := batch.ParseLines([]byte("# salts\nNaCl\n\n  KCl  # potash\n#H2O\nCa(OH)2"))
	assert.Equal(t, []batch.Line{
		{Number: 2, Text: "NaCl"},
		{Number: 4, Text: "KCl"},
		{Number: 6, Text: "Ca(OH)2"},
	}, lines)

	assert.Empty(t, batch.ParseLines(nil))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.formulas"), "H2O\n")
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.formulas"), "CO2\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "H2O\n")
	writeFile(t, filepath.Join(dir, ".hidden", "c.formulas"), "NaCl\n")
	writeFile(t, filepath.Join(dir, "vendor", "d.formulas"), "KCl\n")

	t.Run("default pattern", func(t *testing.T) {
		t.Parallel()

		files, err := batch.Discover(context.Background(), batch.Options{WorkingDir: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.formulas"),
			filepath.Join(dir, "nested", "deep", "b.formulas"),
			filepath.Join(dir, "vendor", "d.formulas"),
		}, files)
	})

	t.Run("exclude", func(t *testing.T) {
		t.Parallel()

		files, err := batch.Discover(context.Background(), batch.Options{
			WorkingDir: dir,
			Exclude:    []string{"vendor"},
		})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("explicit file bypasses patterns", func(t *testing.T) {
		t.Parallel()

		files, err := batch.Discover(context.Background(), batch.Options{
			WorkingDir: dir,
			Paths:      []string{"notes.txt", "a.formulas", "notes.txt"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.formulas"),
			filepath.Join(dir, "notes.txt"),
		}, files)
	})

	t.Run("custom pattern", func(t *testing.T) {
		t.Parallel()

		files, err := batch.Discover(context.Background(), batch.Options{
			WorkingDir: dir,
			Patterns:   []string{"*.txt"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := batch.Discover(context.Background(), batch.Options{
			WorkingDir: dir,
			Patterns:   []string{"[unclosed"},
		})
		require.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := batch.Discover(context.Background(), batch.Options{
			WorkingDir: dir,
			Paths:      []string{"missing"},
		})
		require.Error(t, err)
	})
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.formulas"), "NaCl\nXx2\n")
	writeFile(t, filepath.Join(dir, "a.formulas"), "# water first\nH2O\nCa(OH2\n")
	writeFile(t, filepath.Join(dir, "c.formulas"), "C6H12O6\n")

	runner := batch.New(batch.Options{WorkingDir: dir, Jobs: 2})
	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Items, 5)
	got := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		got = append(got, filepath.Base(item.Source)+":"+item.Input)
	}
	assert.Equal(t, []string{
		"a.formulas:H2O",
		"a.formulas:Ca(OH2",
		"b.formulas:NaCl",
		"b.formulas:Xx2",
		"c.formulas:C6H12O6",
	}, got)

	assert.Equal(t, 2, result.Items[0].Line)
	assert.Equal(t, 3, result.Items[1].Line)
	assert.InDelta(t, 58.44, result.Items[2].Mass.TotalMass, 0.011)

	invalid := result.Items[1]
	assert.False(t, invalid.Valid())
	assert.Equal(t, formula.UnmatchedParenthesis, invalid.Parse.Err.Kind)
	assert.Zero(t, invalid.Mass.TotalMass)

	assert.Equal(t, batch.Stats{
		FilesDiscovered: 3,
		FormulasTotal:   5,
		FormulasValid:   3,
		FormulasInvalid: 2,
	}, result.Stats)
	assert.True(t, result.HasInvalid())
	assert.Len(t, result.Files(), 3)
}

func TestRunner_RunDeterministicAcrossJobCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"e", "d", "c", "b", "a"} {
		writeFile(t, filepath.Join(dir, name+".formulas"), "H2O\nCO2\n"+name+"\n")
	}

	var baseline []batch.Item
	for _, jobs := range []int{1, 3, 0} {
		result, err := batch.New(batch.Options{WorkingDir: dir, Jobs: jobs}).Run(context.Background())
		require.NoError(t, err)
		if baseline == nil {
			baseline = result.Items
			continue
		}
		assert.Equal(t, baseline, result.Items, "jobs=%d", jobs)
	}
}

func TestRunner_RunFilesUnreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.formulas")
	writeFile(t, good, "H2O\n")

	result, err := batch.New(batch.Options{}).RunFiles(context.Background(), []string{
		good,
		filepath.Join(dir, "gone.formulas"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "gone.formulas")
	assert.Len(t, result.Items, 1)
}

func TestRunner_RunEmpty(t *testing.T) {
	t.Parallel()

	result, err := batch.New(batch.Options{WorkingDir: t.TempDir()}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.False(t, result.HasInvalid())
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.formulas"), "H2O\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.New(batch.Options{WorkingDir: dir}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_EvaluateInputsWithResolver(t *testing.T) {
	t.Parallel()

	opts := batch.Options{}
	opts.Resolver = batch.NewCachingResolver(opts)
	runner := batch.New(opts)

	result := runner.EvaluateInputs([]string{"H2O", "H2O!", "XeF4"})
	require.Len(t, result.Items, 3)

	water := result.Items[0]
	assert.Empty(t, water.Source)
	assert.Equal(t, 1, water.Line)
	require.NotNil(t, water.Compound)
	assert.Equal(t, "Water", water.Compound.CommonName)

	assert.Nil(t, result.Items[1].Compound)
	assert.False(t, result.Items[1].Valid())

	require.NotNil(t, result.Items[2].Compound)
	assert.Equal(t, "xenon tetrafluoride", result.Items[2].Compound.IUPACName)
}

func TestResult_Merge(t *testing.T) {
	t.Parallel()

	runner := batch.New(batch.Options{})
	merged := runner.EvaluateInputs([]string{"H2O"})
	merged.Merge(runner.EvaluateInputs([]string{"NaCl", "Q"}))
	merged.Merge(nil)

	assert.Len(t, merged.Items, 3)
	assert.Equal(t, 3, merged.Stats.FormulasTotal)
	assert.Equal(t, 1, merged.Stats.FormulasInvalid)

	var zero batch.Result
	zero.Merge(merged)
	assert.Len(t, zero.Items, 3)
}

func TestRunner_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "lab.formulas")
	writeFile(t, path, "H2O\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan *batch.Result, 8)
	done := make(chan error, 1)
	runner := batch.New(batch.Options{WorkingDir: dir})
	go func() {
		done <- runner.Watch(ctx, 50*time.Millisecond, func(result *batch.Result, err error) {
			assert.NoError(t, err)
			runs <- result
		})
	}()

	select {
	case first := <-runs:
		require.Len(t, first.Items, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	writeFile(t, path, "H2O\nNaCl\n")

	select {
	case second := <-runs:
		require.Len(t, second.Items, 2)
		assert.Equal(t, "NaCl", second.Items[1].Input)
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

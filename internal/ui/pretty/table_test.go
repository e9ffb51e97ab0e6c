package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
)

func TestFormatBreakdown(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0, 2)
	item := evaluate("", 1, "H2O")

	out := formatter.FormatBreakdown(item.Mass)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "ELEMENT")
	assert.Contains(t, lines[0], "ATOMIC MASS")
	assert.True(t, strings.HasPrefix(lines[1], "="))
	assert.Contains(t, lines[2], "Hydrogen")
	assert.Contains(t, lines[2], "2.016")
	assert.Contains(t, lines[3], "Oxygen")
	assert.Contains(t, lines[5], "TOTAL (g/mol)")
	assert.Contains(t, lines[5], "18.02")
	assert.Contains(t, lines[5], "100.00%")
}

func TestFormatBreakdown_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80, 2)
	assert.Empty(t, formatter.FormatBreakdown(evaluate("", 1, "").Mass))
}

func TestFormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, 2)

	result := &batch.Result{Items: []batch.Item{
		named(evaluate("a.formulas", 1, "NaCl"), "table salt"),
		evaluate("a.formulas", 2, "Xx"),
		evaluate("b.formulas", 1, "CO2"),
	}}

	out := formatter.FormatTable(result)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, lines[2], "a.formulas:1")
	assert.Contains(t, lines[2], "58.44")
	assert.Contains(t, lines[2], "table salt")
	assert.Contains(t, lines[3], "Unknown element: Xx")
	assert.True(t, strings.HasPrefix(lines[4], "-"), "files are separated by a light rule")
	assert.Contains(t, lines[5], "44.01")
	assert.Contains(t, lines[7], "Legend")
}

func TestFormatTable_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, 2)
	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&batch.Result{}))
}

package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/formula"
)

func TestFormatItem_Valid(t *testing.T) {
	styles := pretty.NewStyles(false)
	item := named(evaluate("", 1, "H2O"), "water")

	out := styles.FormatItem(item, pretty.ItemOptions{Precision: 2, Breakdown: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "H2O  18.02 g/mol  water", lines[0])
	assert.Contains(t, lines[1], "H  Hydrogen  2 × 1.008 = 2.016")
	assert.Contains(t, lines[2], "O  Oxygen    1 × 15.999 = 15.999")
	assert.Contains(t, lines[2], "%)")
}

func TestFormatItem_WithoutBreakdown(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatItem(evaluate("salts.formulas", 4, "NaCl"), pretty.ItemOptions{Precision: 3})
	assert.Equal(t, "salts.formulas:4  NaCl  58.440 g/mol\n", out)
}

func TestFormatItem_Invalid(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatItem(evaluate("", 1, "Ca (OH2"), pretty.ItemOptions{Precision: 2})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "error")
	assert.Contains(t, lines[0], "Unmatched")
	assert.Equal(t, "    Ca (OH2", lines[1])
	assert.Equal(t, "       ^", lines[2], "caret sits under the raw '('")
}

func TestFormatParseError(t *testing.T) {
	styles := pretty.NewStyles(false)

	t.Run("with position", func(t *testing.T) {
		result := formula.ParseFormula("H2O!")
		out := styles.FormatParseError("H2O!", result.Err)
		assert.Contains(t, out, "(invalid-character)")
		assert.Contains(t, out, "    H2O!\n       ^\n")
	})

	t.Run("without position", func(t *testing.T) {
		result := formula.ParseFormula("")
		out := styles.FormatParseError("", result.Err)
		assert.Contains(t, out, "(empty-input)")
		assert.NotContains(t, out, "^")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, styles.FormatParseError("H2O", nil))
	})
}

func TestCaretColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, pretty.CaretColumn("H2O", 0))
	assert.Equal(t, 4, pretty.CaretColumn("H2 O", 2))
	assert.Equal(t, 3, pretty.CaretColumn("H₂O", 1+len("₂")), "columns count runes, not bytes")
}

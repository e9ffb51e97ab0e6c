package formula_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
)

func counts(pairs ...any) []formula.ElementCount {
	out := make([]formula.ElementCount, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, formula.ElementCount{Element: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return out
}

func TestParseFormula_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formula string
		want    []formula.ElementCount
	}{
		{"single element", "Fe", counts("Fe", 1)},
		{"water", "H2O", counts("H", 2, "O", 1)},
		{"two-letter symbols", "NaCl", counts("Cl", 1, "Na", 1)},
		{"group", "Ca(OH)2", counts("Ca", 1, "H", 2, "O", 2)},
		{"group multiplier", "(H2O)3", counts("H", 6, "O", 3)},
		{"leading group", "(OH)2", counts("H", 2, "O", 2)},
		{"leading group then element", "(NH4)2S", counts("H", 8, "N", 2, "S", 1)},
		{"repeated element", "H2O2", counts("H", 2, "O", 2)},
		{"multi-digit count", "C60", counts("C", 60)},
		{"sulfate", "Al2(SO4)3", counts("Al", 2, "O", 12, "S", 3)},
		{"nested groups", "(CO(OH)2)3", counts("C", 3, "H", 6, "O", 9)},
		{"deep nesting", "K4(Fe(CN)6)", counts("C", 6, "Fe", 1, "K", 4, "N", 6)},
		{"glucose", "C6H12O6", counts("C", 6, "H", 12, "O", 6)},
		{"repeat across levels", "CH3(CH2)2CH3", counts("C", 4, "H", 10)},
		{"empty group", "H()", counts("H", 1)},
		{"leading zeros", "H02", counts("H", 2)},
		{"whitespace stripped", " Ca (OH) 2 ", counts("Ca", 1, "H", 2, "O", 2)},
		{"tabs and newlines", "H2\tO\n", counts("H", 2, "O", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := formula.ParseFormula(tt.formula)
			require.True(t, result.Valid, "unexpected error: %s", result.ErrorMessage())
			assert.Nil(t, result.Err)
			assert.Empty(t, result.ErrorMessage())
			assert.Equal(t, tt.want, result.Elements)

			_, hasPos := result.ErrorPosition()
			assert.False(t, hasPos)
		})
	}
}

func TestParseFormula_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		formula  string
		kind     formula.ErrorKind
		sentinel error
		position int // -1 means no position
		contains string
	}{
		{"empty", "", formula.EmptyInput, formula.ErrEmptyInput, -1, "Please enter a molecular formula"},
		{"whitespace only", "   ", formula.EmptyInput, formula.ErrEmptyInput, -1, "Please enter a molecular formula"},
		{"invalid character", "H2O!", formula.InvalidCharacter, formula.ErrInvalidCharacter, 3, "'!' at position 4"},
		{"invalid character after spaces", "H2 O-", formula.InvalidCharacter, formula.ErrInvalidCharacter, 3, "'-'"},
		{"non-ascii", "H₂O", formula.InvalidCharacter, formula.ErrInvalidCharacter, 1, "'₂'"},
		{"lowercase start", "h2o", formula.InvalidStart, formula.ErrInvalidStart, 0, "must start with an element symbol"},
		{"digit start", "2H", formula.InvalidStart, formula.ErrInvalidStart, 0, "must start"},
		{"close paren start", ")H2", formula.InvalidStart, formula.ErrInvalidStart, 0, "must start"},
		{"empty group only", "()", formula.InvalidStart, formula.ErrInvalidStart, 0, "must start"},
		{"counted empty group only", "(())3", formula.InvalidStart, formula.ErrInvalidStart, 0, "must start"},
		{"unmatched leading group", "(OH2", formula.UnmatchedParenthesis, formula.ErrUnmatchedParenthesis, 0, "position 1"},
		{"unmatched open", "Ca(OH2", formula.UnmatchedParenthesis, formula.ErrUnmatchedParenthesis, 2, "position 3"},
		{"unmatched nested open", "Ca(O(H)2", formula.UnmatchedParenthesis, formula.ErrUnmatchedParenthesis, 2, "Unmatched"},
		{"stray close", "H2)O", formula.UnexpectedCharacter, formula.ErrUnexpectedCharacter, 2, "')'"},
		{"unknown element", "Xx2", formula.UnknownElement, formula.ErrUnknownElement, 0, "Xx"},
		{"unknown element later", "H2Qq", formula.UnknownElement, formula.ErrUnknownElement, 2, "Unknown element: Qq"},
		{"unknown inside group", "Ca(OXy)2", formula.UnknownElement, formula.ErrUnknownElement, 4, "Xy"},
		{"lowercase run is one symbol", "Naa", formula.UnknownElement, formula.ErrUnknownElement, 0, "Naa"},
		{"zero count", "H0", formula.InvalidCount, formula.ErrInvalidCount, 1, "at least 1"},
		{"count too large", "C10000", formula.InvalidCount, formula.ErrInvalidCount, 1, "maximum of 9999"},
		{"huge count", "C99999999999999999999999", formula.InvalidCount, formula.ErrInvalidCount, 1, "maximum"},
		{"group count too large", "K(OH)12345", formula.InvalidCount, formula.ErrInvalidCount, 5, "maximum of 9999"},
		{"group zero count", "Ca(OH)0", formula.InvalidCount, formula.ErrInvalidCount, 6, "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := formula.ParseFormula(tt.formula)
			require.False(t, result.Valid)
			require.NotNil(t, result.Err)
			assert.Empty(t, result.Elements)
			assert.NotNil(t, result.Elements, "invalid results carry an empty, non-nil element list")
			assert.Equal(t, tt.kind, result.Err.Kind)
			assert.ErrorIs(t, result.Err, tt.sentinel)
			assert.Contains(t, result.ErrorMessage(), tt.contains)

			pos, hasPos := result.ErrorPosition()
			if tt.position < 0 {
				assert.False(t, hasPos)
				return
			}
			require.True(t, hasPos)
			assert.Equal(t, tt.position, pos)
		})
	}
}

func TestParseFormula_Deterministic(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"Al2(SO4)3", "C6H12O6", "K4(Fe(CN)6)", "OHCaHO"} {
		first := formula.ParseFormula(input)
		second := formula.ParseFormula(input)
		assert.Equal(t, first, second, "parse of %q should be deterministic", input)
	}
}

func TestParseFormula_SortedRegardlessOfInputOrder(t *testing.T) {
	t.Parallel()

	result := formula.ParseFormula("ZnOCaHBr")
	require.True(t, result.Valid)

	symbols := make([]string, 0, len(result.Elements))
	for _, ec := range result.Elements {
		symbols = append(symbols, ec.Element)
	}
	assert.Equal(t, []string{"Br", "Ca", "H", "O", "Zn"}, symbols)
}

func TestParser_CustomTable(t *testing.T) {
	t.Parallel()

	table, err := elements.NewTable([]elements.Element{
		{Symbol: "H", Name: "Hydrogen", AtomicMass: 1.008},
		{Symbol: "O", Name: "Oxygen", AtomicMass: 16.00},
	})
	require.NoError(t, err)

	parser := formula.New(formula.Options{Table: table})
	assert.Same(t, table, parser.Table())

	assert.True(t, parser.Parse("H2O").Valid)

	result := parser.Parse("NaCl")
	require.False(t, result.Valid)
	assert.Equal(t, formula.UnknownElement, result.Err.Kind)
	assert.Equal(t, "Na", result.Err.Symbol)
}

func TestParser_Bounds(t *testing.T) {
	t.Parallel()

	parser := formula.New(formula.Options{MaxCount: 99, MaxDepth: 2, MaxAtoms: 500})

	t.Run("max count", func(t *testing.T) {
		t.Parallel()

		assert.True(t, parser.Parse("C99").Valid)

		result := parser.Parse("C100")
		require.False(t, result.Valid)
		assert.Equal(t, formula.InvalidCount, result.Err.Kind)
		assert.Equal(t, 99, result.Err.Limit)
	})

	t.Run("max depth", func(t *testing.T) {
		t.Parallel()

		assert.True(t, parser.Parse("K((H)2)3").Valid)

		result := parser.Parse("K(((H)2)3)4")
		require.False(t, result.Valid)
		assert.Equal(t, formula.NestingTooDeep, result.Err.Kind)
		assert.Equal(t, 3, result.Err.Position)
		assert.ErrorIs(t, result.Err, formula.ErrNestingTooDeep)
	})

	t.Run("max atoms", func(t *testing.T) {
		t.Parallel()

		assert.True(t, parser.Parse("K(H50)10").Valid)

		result := parser.Parse("K(H51)10")
		require.False(t, result.Valid)
		assert.Equal(t, formula.InvalidCount, result.Err.Kind)
		assert.Equal(t, 500, result.Err.Limit)
		assert.Equal(t, 501, result.Err.Value)

		// 3 * 83 * 2 fits, 3 * 84 * 2 does not.
		assert.True(t, parser.Parse("((H2)83)3").Valid)
		assert.False(t, parser.Parse("((H2)84)3").Valid)
	})

	t.Run("large multipliers do not overflow", func(t *testing.T) {
		t.Parallel()

		result := formula.ParseFormula("((((((H9999)9999)9999)9999)9999)9999)")
		require.False(t, result.Valid)
		assert.Equal(t, formula.InvalidCount, result.Err.Kind)
		assert.Equal(t, formula.DefaultMaxAtoms, result.Err.Limit)
	})
}

func TestParseError_IsOnlyMatchesOwnKind(t *testing.T) {
	t.Parallel()

	err := &formula.ParseError{Kind: formula.UnknownElement, Symbol: "Xx"}
	assert.True(t, errors.Is(err, formula.ErrUnknownElement))
	assert.False(t, errors.Is(err, formula.ErrInvalidCharacter))
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown-element", formula.UnknownElement.String())
	assert.Equal(t, "empty-input", formula.EmptyInput.String())
	assert.Equal(t, "ErrorKind(99)", formula.ErrorKind(99).String())
}

func TestCombine(t *testing.T) {
	t.Parallel()

	got := formula.Combine([]formula.Token{
		{Symbol: "O", Count: 1},
		{Symbol: "H", Count: 2},
		{Symbol: "O", Count: 3},
	})
	assert.Equal(t, counts("H", 2, "O", 4), got)
	assert.Empty(t, formula.Combine(nil))
}

func TestClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ca(OH)2", formula.Clean(" Ca ( OH )\t2\n"))
}

func TestRawIndex(t *testing.T) {
	t.Parallel()

	raw := "H2 O !"
	clean := formula.Clean(raw)
	require.Equal(t, "H2O!", clean)

	assert.Equal(t, 0, formula.RawIndex(raw, 0))
	assert.Equal(t, 3, formula.RawIndex(raw, 2))
	assert.Equal(t, 5, formula.RawIndex(raw, 3))
	assert.Equal(t, len(raw), formula.RawIndex(raw, 10))
}

package molarmass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

func waterTable(t *testing.T) *elements.Table {
	t.Helper()

	table, err := elements.NewTable([]elements.Element{
		{Number: 1, Symbol: "H", Name: "Hydrogen", AtomicMass: 1.008},
		{Number: 8, Symbol: "O", Name: "Oxygen", AtomicMass: 16.00},
		{Number: 99, Symbol: "Q", AtomicMass: 2.5},
	})
	require.NoError(t, err)
	return table
}

func TestCalculate_Water(t *testing.T) {
	t.Parallel()

	calc := molarmass.NewCalculator(waterTable(t))
	result := calc.Calculate([]formula.ElementCount{
		{Element: "H", Count: 2},
		{Element: "O", Count: 1},
	})

	assert.InDelta(t, 18.02, result.TotalMass, 1e-9)
	require.Len(t, result.Breakdown, 2)

	assert.Equal(t, molarmass.ElementCalculation{
		Element: "H", ElementName: "Hydrogen", AtomicMass: 1.008, Count: 2, Subtotal: 2.016,
	}, result.Breakdown[0])
	assert.Equal(t, "O", result.Breakdown[1].Element)
	assert.InDelta(t, 16.0, result.Breakdown[1].Subtotal, 1e-9)

	// The subtotals sum to the unrounded total.
	assert.InDelta(t, 18.016, result.Unrounded(), 1e-9)
}

func TestCalculate_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	calc := molarmass.NewCalculator(waterTable(t))
	result := calc.Calculate([]formula.ElementCount{
		{Element: "O", Count: 1},
		{Element: "H", Count: 2},
	})

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "O", result.Breakdown[0].Element)
	assert.Equal(t, "H", result.Breakdown[1].Element)
}

func TestCalculate_NameFallsBackToSymbol(t *testing.T) {
	t.Parallel()

	calc := molarmass.NewCalculator(waterTable(t))
	result := calc.Calculate([]formula.ElementCount{{Element: "Q", Count: 2}})

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "Q", result.Breakdown[0].ElementName)
	assert.InDelta(t, 5.0, result.TotalMass, 1e-9)
}

func TestCalculate_UnknownElementPanics(t *testing.T) {
	t.Parallel()

	calc := molarmass.NewCalculator(waterTable(t))
	assert.Panics(t, func() {
		calc.Calculate([]formula.ElementCount{{Element: "Na", Count: 1}})
	})
}

func TestCalculate_Empty(t *testing.T) {
	t.Parallel()

	result := molarmass.CalculateMolarMass(nil)
	assert.Zero(t, result.TotalMass)
	assert.Empty(t, result.Breakdown)
}

func TestCalculateMolarMass_FromParsedFormulas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		formula string
		want    float64
	}{
		{"NaCl", 58.44},
		{"CO2", 44.01},
		{"C6H12O6", 180.16},
		{"Ca(OH)2", 74.09},
		{"Al2(SO4)3", 342.14},
		{"Fe", 55.85},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			t.Parallel()

			parsed := formula.ParseFormula(tt.formula)
			require.True(t, parsed.Valid, parsed.ErrorMessage())

			result := molarmass.CalculateMolarMass(parsed.Elements)
			assert.InDelta(t, tt.want, result.TotalMass, 0.011)
			assert.Len(t, result.Breakdown, len(parsed.Elements))
		})
	}
}

func TestResult_Percent(t *testing.T) {
	t.Parallel()

	calc := molarmass.NewCalculator(waterTable(t))
	result := calc.Calculate([]formula.ElementCount{
		{Element: "H", Count: 2},
		{Element: "O", Count: 1},
	})

	assert.InDelta(t, 2.016/18.016*100, result.Percent(0), 1e-9)
	assert.InDelta(t, 16.0/18.016*100, result.Percent(1), 1e-9)
	assert.Zero(t, result.Percent(5))
	assert.Zero(t, molarmass.Result{}.Percent(0))
}

func TestRound(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 18.02, molarmass.Round(18.016, 2), 1e-9)
	assert.InDelta(t, 18.0, molarmass.Round(18.004, 2), 1e-9)
	assert.InDelta(t, 0.1235, molarmass.Round(0.12346, 4), 1e-12)
	assert.InDelta(t, 3.0, molarmass.Round(2.5, 0), 1e-9)
}

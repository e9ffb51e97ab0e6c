// Package molarmass turns parsed element counts into a molar mass with a
// per-element breakdown.
package molarmass

import (
	"fmt"
	"math"
	"sync"

	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
)

// ElementCalculation is one element's contribution to a molar mass.
type ElementCalculation struct {
	Element     string
	ElementName string
	AtomicMass  float64
	Count       int
	Subtotal    float64
}

// Result is a molar mass and its per-element breakdown.
type Result struct {
	// TotalMass is the sum of all subtotals rounded to two decimal places.
	TotalMass float64

	// Breakdown preserves the order of the input element counts.
	Breakdown []ElementCalculation
}

// Unrounded returns the exact sum of the breakdown subtotals.
func (r Result) Unrounded() float64 {
	var total float64
	for _, calc := range r.Breakdown {
		total += calc.Subtotal
	}
	return total
}

// Percent returns the mass fraction of the breakdown entry at index i as a
// percentage of the unrounded total.
func (r Result) Percent(i int) float64 {
	total := r.Unrounded()
	if total == 0 || i < 0 || i >= len(r.Breakdown) {
		return 0
	}
	return r.Breakdown[i].Subtotal / total * 100
}

// Calculator computes molar masses against an element table.
type Calculator struct {
	table *elements.Table
}

// NewCalculator creates a Calculator. A nil table selects elements.Default().
func NewCalculator(table *elements.Table) *Calculator {
	if table == nil {
		table = elements.Default()
	}
	return &Calculator{table: table}
}

// Calculate sums atomic mass times count for each entry in counts.
//
// Every symbol must be present in the calculator's table; counts produced by
// a formula.Parser using the same table always are. An unknown symbol is a
// caller bug and panics.
func (c *Calculator) Calculate(counts []formula.ElementCount) Result {
	breakdown := make([]ElementCalculation, 0, len(counts))
	var total float64

	for _, ec := range counts {
		mass, ok := c.table.Mass(ec.Element)
		if !ok {
			panic(fmt.Sprintf("molarmass: element %q is not in the element table", ec.Element))
		}

		subtotal := mass * float64(ec.Count)
		breakdown = append(breakdown, ElementCalculation{
			Element:     ec.Element,
			ElementName: c.table.Name(ec.Element),
			AtomicMass:  mass,
			Count:       ec.Count,
			Subtotal:    subtotal,
		})
		total += subtotal
	}

	return Result{
		TotalMass: Round(total, 2),
		Breakdown: breakdown,
	}
}

// Round rounds value to the given number of decimal places, half away
// from zero.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

//nolint:gochecknoglobals // Stateless default instance.
var defaultCalculator = sync.OnceValue(func() *Calculator {
	return NewCalculator(nil)
})

// CalculateMolarMass computes the molar mass of counts using the default
// element table.
func CalculateMolarMass(counts []formula.ElementCount) Result {
	return defaultCalculator().Calculate(counts)
}

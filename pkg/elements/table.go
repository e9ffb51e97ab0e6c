// Package elements provides the read-only atomic data table used by the
// formula parser and the mass aggregator.
//
// A Table maps element symbols to their atomic number, name, and standard
// atomic mass. Tables are immutable once built; Extend returns a new Table.
package elements

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Sentinel errors for table construction.
var (
	// ErrInvalidSymbol is returned for symbols that are not an uppercase
	// letter followed by lowercase letters.
	ErrInvalidSymbol = errors.New("invalid element symbol")

	// ErrDuplicateSymbol is returned when a symbol appears twice in one input.
	ErrDuplicateSymbol = errors.New("duplicate element symbol")

	// ErrInvalidMass is returned for non-positive or non-finite masses.
	ErrInvalidMass = errors.New("invalid atomic mass")
)

// Element describes a single chemical element.
type Element struct {
	Number     int     `json:"number" yaml:"number" toml:"number"`
	Symbol     string  `json:"symbol" yaml:"symbol" toml:"symbol"`
	Name       string  `json:"name" yaml:"name" toml:"name"`
	AtomicMass float64 `json:"atomicMass" yaml:"atomic_mass" toml:"atomic_mass"`
}

// Table is an immutable symbol-indexed collection of elements.
// It is safe for concurrent use.
type Table struct {
	bySymbol map[string]Element
	ordered  []Element
}

// NewTable validates elems and builds a Table from them.
func NewTable(elems []Element) (*Table, error) {
	table := &Table{
		bySymbol: make(map[string]Element, len(elems)),
		ordered:  make([]Element, 0, len(elems)),
	}

	for _, elem := range elems {
		if err := validateElement(elem); err != nil {
			return nil, err
		}
		if _, exists := table.bySymbol[elem.Symbol]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, elem.Symbol)
		}
		table.bySymbol[elem.Symbol] = elem
		table.ordered = append(table.ordered, elem)
	}

	sortElements(table.ordered)
	return table, nil
}

// Extend returns a new Table containing t's elements with overrides applied.
// An override replaces the element with the same symbol or adds a new one.
// The receiver is not modified.
func (t *Table) Extend(overrides []Element) (*Table, error) {
	seen := make(map[string]struct{}, len(overrides))
	for _, elem := range overrides {
		if err := validateElement(elem); err != nil {
			return nil, err
		}
		if _, dup := seen[elem.Symbol]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, elem.Symbol)
		}
		seen[elem.Symbol] = struct{}{}
	}

	merged := make([]Element, 0, len(t.ordered)+len(overrides))
	for _, elem := range t.ordered {
		if _, replaced := seen[elem.Symbol]; !replaced {
			merged = append(merged, elem)
		}
	}
	merged = append(merged, overrides...)

	return NewTable(merged)
}

// Lookup returns the element for symbol.
func (t *Table) Lookup(symbol string) (Element, bool) {
	elem, ok := t.bySymbol[symbol]
	return elem, ok
}

// Has reports whether symbol is present in the table.
func (t *Table) Has(symbol string) bool {
	_, ok := t.bySymbol[symbol]
	return ok
}

// Mass returns the atomic mass for symbol.
func (t *Table) Mass(symbol string) (float64, bool) {
	elem, ok := t.bySymbol[symbol]
	return elem.AtomicMass, ok
}

// Name returns the element name for symbol, or the symbol itself when the
// table has no name for it.
func (t *Table) Name(symbol string) string {
	if elem, ok := t.bySymbol[symbol]; ok && elem.Name != "" {
		return elem.Name
	}
	return symbol
}

// Len returns the number of elements in the table.
func (t *Table) Len() int {
	return len(t.ordered)
}

// All returns a copy of all elements ordered by atomic number.
func (t *Table) All() []Element {
	out := make([]Element, len(t.ordered))
	copy(out, t.ordered)
	return out
}

//nolint:gochecknoglobals // Built once, read-only afterwards.
var defaultTable = sync.OnceValue(func() *Table {
	table, err := NewTable(builtinElements)
	if err != nil {
		panic(fmt.Sprintf("elements: invalid built-in table: %v", err))
	}
	return table
})

// Default returns the built-in table of the 118 standard elements.
func Default() *Table {
	return defaultTable()
}

func validateElement(elem Element) error {
	if !IsSymbol(elem.Symbol) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, elem.Symbol)
	}
	if elem.AtomicMass <= 0 || math.IsNaN(elem.AtomicMass) || math.IsInf(elem.AtomicMass, 0) {
		return fmt.Errorf("%w for %s: %v", ErrInvalidMass, elem.Symbol, elem.AtomicMass)
	}
	return nil
}

// IsSymbol reports whether s is shaped like an element symbol: one uppercase
// ASCII letter followed by zero or more lowercase ASCII letters.
func IsSymbol(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func sortElements(elems []Element) {
	sort.SliceStable(elems, func(i, j int) bool {
		if elems[i].Number != elems[j].Number {
			return elems[i].Number < elems[j].Number
		}
		return elems[i].Symbol < elems[j].Symbol
	})
}

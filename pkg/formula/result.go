package formula

import "sort"

// Token is a single element occurrence produced while scanning a formula,
// before occurrences of the same symbol are combined.
type Token struct {
	// Symbol is the element symbol, e.g. "Na".
	Symbol string

	// Count is the local count multiplied by all enclosing group counts.
	Count int

	// Position is the index of the symbol's first character in the cleaned
	// formula.
	Position int
}

// ElementCount is the total number of atoms of one element in a formula.
type ElementCount struct {
	Element string
	Count   int
}

// ParseResult is the outcome of parsing a formula.
// When Valid is false, Elements is empty and Err describes the failure.
type ParseResult struct {
	// Elements holds one entry per distinct symbol, sorted ascending by symbol.
	Elements []ElementCount

	// Valid reports whether parsing succeeded.
	Valid bool

	// Err is the failure reason; nil when Valid is true.
	Err *ParseError

	// Clean is the formula with all whitespace removed. Error positions
	// index into this string.
	Clean string
}

// ErrorMessage returns the human-readable failure message, or "" when the
// result is valid.
func (r ParseResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ErrorPosition returns the zero-based index into Clean of the offending
// character, and false when the failure has no location.
func (r ParseResult) ErrorPosition() (int, bool) {
	if !r.Err.HasPosition() {
		return 0, false
	}
	return r.Err.Position, true
}

// Combine groups tokens by symbol, summing their counts, and returns the
// totals sorted ascending by symbol.
func Combine(tokens []Token) []ElementCount {
	totals := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		totals[tok.Symbol] += tok.Count
	}

	combined := make([]ElementCount, 0, len(totals))
	for symbol, count := range totals {
		combined = append(combined, ElementCount{Element: symbol, Count: count})
	}

	sort.Slice(combined, func(i, j int) bool {
		return combined[i].Element < combined[j].Element
	})

	return combined
}

func failure(clean string, err *ParseError) ParseResult {
	return ParseResult{
		Elements: []ElementCount{},
		Valid:    false,
		Err:      err,
		Clean:    clean,
	}
}

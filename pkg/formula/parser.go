// Package formula parses chemical molecular formulas such as "Ca(OH)2" into
// per-element atom counts.
//
// The grammar is:
//
//	formula := unit*
//	unit    := element | group
//	element := UPPER LOWER* digits?
//	group   := '(' formula ')' digits?
//	digits  := DIGIT+
//
// Parsing is a single left-to-right recursive descent over an index cursor.
// Counts inside a group are multiplied by the group's trailing count, so
// nested groups compose multiplicatively.
package formula

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gomolar/pkg/elements"
)

// Parser bounds.
const (
	// DefaultMaxCount is the largest count accepted after a symbol or group.
	DefaultMaxCount = 9999

	// DefaultMaxDepth is the deepest group nesting accepted.
	DefaultMaxDepth = 16

	// DefaultMaxAtoms caps a single token's count after group multipliers
	// are applied.
	DefaultMaxAtoms = 1_000_000
)

// Options configures a Parser. Zero values select the defaults.
type Options struct {
	// Table is the element table symbols are validated against.
	// Defaults to elements.Default().
	Table *elements.Table

	// MaxCount bounds each literal digit run.
	MaxCount int

	// MaxDepth bounds group nesting.
	MaxDepth int

	// MaxAtoms bounds each token's multiplied count.
	MaxAtoms int
}

// Parser converts formula strings into element counts.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	table    *elements.Table
	maxCount int
	maxDepth int
	maxAtoms int
}

// New creates a Parser from opts.
func New(opts Options) *Parser {
	parser := &Parser{
		table:    opts.Table,
		maxCount: opts.MaxCount,
		maxDepth: opts.MaxDepth,
		maxAtoms: opts.MaxAtoms,
	}
	if parser.table == nil {
		parser.table = elements.Default()
	}
	if parser.maxCount <= 0 {
		parser.maxCount = DefaultMaxCount
	}
	if parser.maxDepth <= 0 {
		parser.maxDepth = DefaultMaxDepth
	}
	if parser.maxAtoms <= 0 {
		parser.maxAtoms = DefaultMaxAtoms
	}
	return parser
}

// Table returns the element table the parser validates against.
func (p *Parser) Table() *elements.Table {
	return p.table
}

//nolint:gochecknoglobals // Stateless default instance.
var defaultParser = sync.OnceValue(func() *Parser {
	return New(Options{})
})

// ParseFormula parses raw using the default element table and bounds.
func ParseFormula(raw string) ParseResult {
	return defaultParser().Parse(raw)
}

// Parse parses raw into a ParseResult. It never panics; every failure is
// reported through the result.
func (p *Parser) Parse(raw string) ParseResult {
	if strings.TrimSpace(raw) == "" {
		return failure("", &ParseError{Kind: EmptyInput, Position: noPosition})
	}

	clean := Clean(raw)

	if idx := firstInvalidChar(clean); idx >= 0 {
		char, _ := utf8.DecodeRuneInString(clean[idx:])
		return failure(clean, &ParseError{Kind: InvalidCharacter, Position: idx, Char: char})
	}

	if !isUpper(clean[0]) && clean[0] != '(' {
		return failure(clean, &ParseError{Kind: InvalidStart, Position: 0})
	}

	scan := &scanner{parser: p, src: clean}
	if err := scan.sequence(0, len(clean), 1, 0); err != nil {
		return failure(clean, err)
	}

	// Groups alone, such as "()2", name no element.
	if len(scan.tokens) == 0 {
		return failure(clean, &ParseError{Kind: InvalidStart, Position: 0})
	}

	for _, tok := range scan.tokens {
		if !p.table.Has(tok.Symbol) {
			return failure(clean, &ParseError{
				Kind:     UnknownElement,
				Position: tok.Position,
				Symbol:   tok.Symbol,
			})
		}
	}

	return ParseResult{
		Elements: Combine(scan.tokens),
		Valid:    true,
		Clean:    clean,
	}
}

// Clean removes all whitespace from raw.
func Clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// RawIndex maps an index into Clean(raw) back to the byte index of the same
// character in raw. It returns len(raw) when cleanIdx is out of range.
func RawIndex(raw string, cleanIdx int) int {
	seen := 0
	for idx, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		if seen == cleanIdx {
			return idx
		}
		seen += utf8.RuneLen(r)
	}
	return len(raw)
}

// scanner walks a cleaned formula and collects tokens.
type scanner struct {
	parser *Parser
	src    string
	tokens []Token
}

// sequence parses src[start:end] as a formula whose counts are scaled by
// multiplier. depth is the number of enclosing groups.
func (s *scanner) sequence(start, end, multiplier, depth int) *ParseError {
	idx := start
	for idx < end {
		char := s.src[idx]

		switch {
		case char == '(':
			next, err := s.group(idx, end, multiplier, depth)
			if err != nil {
				return err
			}
			idx = next
		case isUpper(char):
			next, err := s.element(idx, end, multiplier)
			if err != nil {
				return err
			}
			idx = next
		default:
			return &ParseError{Kind: UnexpectedCharacter, Position: idx, Char: rune(char)}
		}
	}
	return nil
}

// group parses the group opening at src[open] and returns the index after
// its trailing count.
func (s *scanner) group(open, end, multiplier, depth int) (int, *ParseError) {
	if depth >= s.parser.maxDepth {
		return 0, &ParseError{Kind: NestingTooDeep, Position: open, Limit: s.parser.maxDepth}
	}

	closeIdx := matchingParen(s.src, open, end)
	if closeIdx < 0 {
		return 0, &ParseError{Kind: UnmatchedParenthesis, Position: open}
	}

	count, next, err := s.count(closeIdx+1, end)
	if err != nil {
		return 0, err
	}

	inner, err := s.scale(multiplier, count, closeIdx+1)
	if err != nil {
		return 0, err
	}

	if err := s.sequence(open+1, closeIdx, inner, depth+1); err != nil {
		return 0, err
	}
	return next, nil
}

// element parses the symbol starting at src[start] and its optional count.
func (s *scanner) element(start, end, multiplier int) (int, *ParseError) {
	idx := start + 1
	for idx < end && isLower(s.src[idx]) {
		idx++
	}
	symbol := s.src[start:idx]

	count, next, err := s.count(idx, end)
	if err != nil {
		return 0, err
	}

	total, err := s.scale(multiplier, count, idx)
	if err != nil {
		return 0, err
	}

	s.tokens = append(s.tokens, Token{Symbol: symbol, Count: total, Position: start})
	return next, nil
}

// count reads an optional digit run at src[start:end]. An absent run means
// a count of 1.
func (s *scanner) count(start, end int) (int, int, *ParseError) {
	idx := start
	value := 0
	for idx < end && isDigit(s.src[idx]) {
		if value <= s.parser.maxCount {
			value = value*10 + int(s.src[idx]-'0')
		}
		idx++
	}

	if idx == start {
		return 1, idx, nil
	}

	limit := s.parser.maxCount
	if value == 0 || value > limit {
		if value > limit {
			value = limit + 1
		}
		return 0, 0, &ParseError{Kind: InvalidCount, Position: start, Value: value, Limit: limit}
	}
	return value, idx, nil
}

// scale multiplies count by multiplier, enforcing the atom bound. pos is
// the index reported when the bound is exceeded.
func (s *scanner) scale(multiplier, count, pos int) (int, *ParseError) {
	limit := s.parser.maxAtoms
	if count > limit/multiplier {
		return 0, &ParseError{Kind: InvalidCount, Position: pos, Value: limit + 1, Limit: limit}
	}
	return multiplier * count, nil
}

// matchingParen returns the index of the ')' matching the '(' at src[open],
// searching no further than end, or -1 when there is none.
func matchingParen(src string, open, end int) int {
	depth := 0
	for idx := open; idx < end; idx++ {
		switch src[idx] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

// firstInvalidChar returns the index of the first character outside
// [A-Za-z0-9()], or -1.
func firstInvalidChar(clean string) int {
	for idx := range len(clean) {
		char := clean[idx]
		if !isUpper(char) && !isLower(char) && !isDigit(char) && char != '(' && char != ')' {
			return idx
		}
	}
	return -1
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

package formula

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a formula parse failure.
type ErrorKind int

// Parse failure kinds. The set is closed; switch statements over ErrorKind
// should handle every value.
const (
	// EmptyInput means the formula was empty or whitespace only.
	EmptyInput ErrorKind = iota + 1

	// InvalidCharacter means the cleaned formula contains a character
	// outside [A-Za-z0-9()].
	InvalidCharacter

	// InvalidStart means the cleaned formula begins with something other
	// than an uppercase letter or '(', or contains no element at all.
	InvalidStart

	// UnmatchedParenthesis means an opening parenthesis has no closing match.
	UnmatchedParenthesis

	// UnexpectedCharacter means a digit or closing parenthesis appeared
	// where an element or group was expected.
	UnexpectedCharacter

	// UnknownElement means a well-formed symbol is not in the element table.
	UnknownElement

	// InvalidCount means a count is zero or exceeds the configured bounds.
	InvalidCount

	// NestingTooDeep means groups are nested beyond the configured depth.
	NestingTooDeep
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "empty-input"
	case InvalidCharacter:
		return "invalid-character"
	case InvalidStart:
		return "invalid-start"
	case UnmatchedParenthesis:
		return "unmatched-parenthesis"
	case UnexpectedCharacter:
		return "unexpected-character"
	case UnknownElement:
		return "unknown-element"
	case InvalidCount:
		return "invalid-count"
	case NestingTooDeep:
		return "nesting-too-deep"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrEmptyInput           = errors.New("empty formula")
	ErrInvalidCharacter     = errors.New("invalid character")
	ErrInvalidStart         = errors.New("formula must start with an element symbol")
	ErrUnmatchedParenthesis = errors.New("unmatched parenthesis")
	ErrUnexpectedCharacter  = errors.New("unexpected character")
	ErrUnknownElement       = errors.New("unknown element")
	ErrInvalidCount         = errors.New("invalid count")
	ErrNestingTooDeep       = errors.New("groups nested too deeply")
)

// sentinel returns the errors.Is target for k.
func (k ErrorKind) sentinel() error {
	switch k {
	case EmptyInput:
		return ErrEmptyInput
	case InvalidCharacter:
		return ErrInvalidCharacter
	case InvalidStart:
		return ErrInvalidStart
	case UnmatchedParenthesis:
		return ErrUnmatchedParenthesis
	case UnexpectedCharacter:
		return ErrUnexpectedCharacter
	case UnknownElement:
		return ErrUnknownElement
	case InvalidCount:
		return ErrInvalidCount
	case NestingTooDeep:
		return ErrNestingTooDeep
	default:
		return nil
	}
}

// noPosition marks errors that do not point at a character.
const noPosition = -1

// ParseError describes why a formula could not be parsed.
type ParseError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Position is the zero-based byte index into the whitespace-stripped
	// formula, or -1 when the error has no location (EmptyInput).
	Position int

	// Char is the offending character for InvalidCharacter and
	// UnexpectedCharacter.
	Char rune

	// Symbol is the unrecognized symbol for UnknownElement.
	Symbol string

	// Value is the offending count for InvalidCount (capped at Limit+1
	// for runs too long to represent).
	Value int

	// Limit is the bound that was exceeded for InvalidCount and
	// NestingTooDeep.
	Limit int
}

// HasPosition reports whether the error points at a character.
func (e *ParseError) HasPosition() bool {
	return e != nil && e.Position >= 0
}

// Error implements the error interface. Positions in messages are 1-based.
func (e *ParseError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "Please enter a molecular formula"
	case InvalidCharacter:
		return fmt.Sprintf("Invalid character '%c' at position %d", e.Char, e.Position+1)
	case InvalidStart:
		return "Formula must start with an element symbol (uppercase letter)"
	case UnmatchedParenthesis:
		return fmt.Sprintf("Unmatched opening parenthesis at position %d", e.Position+1)
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character '%c' at position %d", e.Char, e.Position+1)
	case UnknownElement:
		return "Unknown element: " + e.Symbol
	case InvalidCount:
		if e.Value == 0 {
			return fmt.Sprintf("Count at position %d must be at least 1", e.Position+1)
		}
		return fmt.Sprintf("Count at position %d exceeds the maximum of %d", e.Position+1, e.Limit)
	case NestingTooDeep:
		return fmt.Sprintf("Group at position %d is nested deeper than %d levels", e.Position+1, e.Limit)
	default:
		return "Invalid formula format"
	}
}

// Is reports whether target is the sentinel error for e's kind.
func (e *ParseError) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

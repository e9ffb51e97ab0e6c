// Package convert converts between a sample's mass and its amount of
// substance for a known molar mass.
package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNonPositive is returned when a quantity or molar mass is not a
// positive finite number.
var ErrNonPositive = errors.New("value must be a positive finite number")

// Direction selects which way a conversion runs.
type Direction int

const (
	// MassToMoles computes moles = mass / molar mass.
	MassToMoles Direction = iota

	// MolesToMass computes mass = moles * molar mass.
	MolesToMass
)

// String returns the CLI name of the direction.
func (d Direction) String() string {
	switch d {
	case MassToMoles:
		return "mass-to-moles"
	case MolesToMass:
		return "moles-to-mass"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection converts a CLI name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mass-to-moles", "mass", "g":
		return MassToMoles, nil
	case "moles-to-mass", "moles", "mol":
		return MolesToMass, nil
	default:
		return 0, fmt.Errorf("unknown conversion direction %q (valid: mass-to-moles, moles-to-mass)", s)
	}
}

// Conversion is the outcome of a single conversion.
type Conversion struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Input     float64   `json:"input"    yaml:"input"`
	Output    float64   `json:"output"   yaml:"output"`
	MolarMass float64   `json:"molarMass" yaml:"molarMass"`
}

// InputUnit returns the unit of Input.
func (c Conversion) InputUnit() string {
	if c.Direction == MolesToMass {
		return "mol"
	}
	return "g"
}

// OutputUnit returns the unit of Output.
func (c Conversion) OutputUnit() string {
	if c.Direction == MolesToMass {
		return "g"
	}
	return "mol"
}

// String shows the arithmetic, for example "36.04 g ÷ 18.02 g/mol = 2.0000 mol".
func (c Conversion) String() string {
	op := "÷"
	if c.Direction == MolesToMass {
		op = "×"
	}
	return fmt.Sprintf("%s %s %s %s g/mol = %.4f %s",
		formatFloat(c.Input), c.InputUnit(), op, formatFloat(c.MolarMass), c.Output, c.OutputUnit())
}

// Convert runs a conversion of value in the given direction.
func Convert(direction Direction, value, molarMass float64) (Conversion, error) {
	var (
		out float64
		err error
	)
	switch direction {
	case MassToMoles:
		out, err = MassToMolesValue(value, molarMass)
	case MolesToMass:
		out, err = MolesToMassValue(value, molarMass)
	default:
		return Conversion{}, fmt.Errorf("convert: unknown direction %v", direction)
	}
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Direction: direction, Input: value, Output: out, MolarMass: molarMass}, nil
}

// MassToMolesValue returns mass / molarMass.
func MassToMolesValue(mass, molarMass float64) (float64, error) {
	if err := checkPositive("mass", mass); err != nil {
		return 0, err
	}
	if err := checkPositive("molar mass", molarMass); err != nil {
		return 0, err
	}
	return mass / molarMass, nil
}

// MolesToMassValue returns moles * molarMass.
func MolesToMassValue(moles, molarMass float64) (float64, error) {
	if err := checkPositive("moles", moles); err != nil {
		return 0, err
	}
	if err := checkPositive("molar mass", molarMass); err != nil {
		return 0, err
	}
	return moles * molarMass, nil
}

func checkPositive(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%s %v: %w", name, value, ErrNonPositive)
	}
	return nil
}

// formatFloat prints value with the fewest digits that round-trip.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

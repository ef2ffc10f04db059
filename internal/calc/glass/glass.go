// Package glass holds the cross-section and material models shared by the
// plate solvers and the allowable-stress tables.
package glass

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput marks inputs rejected before any formula is evaluated.
var ErrInvalidInput = errors.New("invalid input")

// Interlayer is the bonding material between plies of a laminated section.
type Interlayer string

const (
	InterlayerSG  Interlayer = "sg" // rigid-bonded (ionoplast)
	InterlayerPVB Interlayer = "pvb"
	InterlayerEVA Interlayer = "eva"
)

// Rigid reports whether the interlayer transfers full shear between plies.
func (il Interlayer) Rigid() bool {
	return il == InterlayerSG || il == ""
}

func (il Interlayer) valid() bool {
	switch il {
	case "", InterlayerSG, InterlayerPVB, InterlayerEVA:
		return true
	}
	return false
}

// Section is an ordered stack of glass plies, outermost first.
type Section struct {
	plies      []float64
	interlayer Interlayer
}

// NewSection validates and copies the ply thicknesses (mm).
func NewSection(plies []float64, interlayer Interlayer) (Section, error) {
	if len(plies) == 0 {
		return Section{}, fmt.Errorf("%w: at least one ply thickness is required", ErrInvalidInput)
	}
	for i, t := range plies {
		if !(t > 0) {
			return Section{}, fmt.Errorf("%w: ply %d thickness must be positive, got %g", ErrInvalidInput, i+1, t)
		}
	}
	if !interlayer.valid() {
		return Section{}, fmt.Errorf("%w: unknown interlayer %q", ErrInvalidInput, interlayer)
	}
	if interlayer == "" {
		interlayer = InterlayerSG
	}
	cp := make([]float64, len(plies))
	copy(cp, plies)
	return Section{plies: cp, interlayer: interlayer}, nil
}

// Monolithic is a single-ply section.
func Monolithic(t float64) (Section, error) {
	return NewSection([]float64{t}, InterlayerSG)
}

func (s Section) Plies() []float64 {
	cp := make([]float64, len(s.plies))
	copy(cp, s.plies)
	return cp
}

func (s Section) Interlayer() Interlayer { return s.interlayer }

// Total is the plain sum of the ply thicknesses.
func (s Section) Total() float64 {
	return floats.Sum(s.plies)
}

// EquivalentThickness is the monolithic thickness with the same bending
// stiffness. Rigid interlayers act as one plate; soft ones use the
// 0.866·Σt − 0.268 reduction.
func (s Section) EquivalentThickness() float64 {
	sum := s.Total()
	if s.interlayer.Rigid() {
		return sum
	}
	return 0.866*sum - 0.268
}

// OuterThicknesses returns the first and last ply. A single-ply section
// returns the same value twice.
func (s Section) OuterThicknesses() (float64, float64) {
	if len(s.plies) == 0 {
		return 0, 0
	}
	return s.plies[0], s.plies[len(s.plies)-1]
}

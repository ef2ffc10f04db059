// Package plate computes maximum bending stress and deflection of glass panels
// under lateral pressure from tabulated plate coefficients.
//
// Every solver validates its geometry against the range covered by its table
// when constructed and fails with a RangeError otherwise; those panels need a
// finite-element model. Solvers are immutable once built.
package plate

import (
	"errors"
	"fmt"
	"math"

	"github.com/siknue/gpg-back/internal/calc/bisect"
	"github.com/siknue/gpg-back/internal/calc/glass"
)

// ErrOutOfRange matches every RangeError.
var ErrOutOfRange = errors.New("outside tabulated range")

// RangeError reports a geometry ratio outside the applicability of a table.
type RangeError struct {
	msg string
}

func (e *RangeError) Error() string        { return e.msg }
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

func outOfRange(format string, args ...any) error {
	return &RangeError{msg: fmt.Sprintf(format, args...)}
}

// Coefficients are the dimensionless deflection (Alpha) and stress (Beta) factors.
type Coefficients struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Plate is implemented by every support/load configuration.
type Plate interface {
	// Stress is the maximum bending stress in N/mm².
	Stress() float64
	// Displacement is the maximum out-of-plane deflection in mm.
	Displacement() float64
	Coefficients() Coefficients
}

// Table maps ascending ratio breakpoints to coefficients. A ratio is assigned
// the first breakpoint at or above it.
type Table struct {
	Breakpoints []float64
	Alpha       []float64
	Beta        []float64
}

func (t Table) Lookup(ratio float64) (Coefficients, error) {
	i := bisect.Search(t.Breakpoints, ratio, bisect.Left)
	if i >= len(t.Breakpoints) || i >= len(t.Alpha) || i >= len(t.Beta) {
		return Coefficients{}, outOfRange("ratio %g is above the last tabulated value. use FEM instead", ratio)
	}
	return Coefficients{Alpha: t.Alpha[i], Beta: t.Beta[i]}, nil
}

// Validate checks the table shape: non-empty, parallel, strictly ascending.
func (t Table) Validate() error {
	n := len(t.Breakpoints)
	if n == 0 {
		return errors.New("empty table")
	}
	if len(t.Alpha) != n || len(t.Beta) != n {
		return fmt.Errorf("table lengths differ: breakpoints %d, alpha %d, beta %d", n, len(t.Alpha), len(t.Beta))
	}
	for i := 1; i < n; i++ {
		if !(t.Breakpoints[i] > t.Breakpoints[i-1]) {
			return fmt.Errorf("breakpoint %d (%g) is not above %g", i, t.Breakpoints[i], t.Breakpoints[i-1])
		}
	}
	return nil
}

// load is the part every solver shares: pressure, section and material.
type load struct {
	w float64
	t float64
	e float64
}

func newLoad(w float64, sec glass.Section, mat glass.Material) (load, error) {
	if err := positive("pressure", w); err != nil {
		return load{}, err
	}
	t := sec.EquivalentThickness()
	if !(t > 0) {
		return load{}, fmt.Errorf("%w: equivalent thickness must be positive, got %g", glass.ErrInvalidInput, t)
	}
	if !(mat.E > 0) {
		return load{}, fmt.Errorf("%w: Young's modulus must be positive, got %g", glass.ErrInvalidInput, mat.E)
	}
	return load{w: w, t: t, e: mat.E}, nil
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", glass.ErrInvalidInput, name, v)
	}
	return nil
}

// sigma = β·w·a²/t²
func (l load) uniformStress(c Coefficients, a float64) float64 {
	return c.Beta * (l.w * a * a) / (l.t * l.t)
}

// delta = α·w·a⁴/(E·t³)
func (l load) uniformDisplacement(c Coefficients, a float64) float64 {
	return c.Alpha * (l.w * a * a * a * a) / (l.e * l.t * l.t * l.t)
}

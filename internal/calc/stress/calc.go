// Package stress is the entry point to the glass calculation engine. It turns
// request payloads into a section, material and plate solver, and reports the
// rounded maximum stress and deflection.
package stress

import (
	"fmt"
	"math"
	"strings"

	"github.com/siknue/gpg-back/internal/calc/glass"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"gonum.org/v1/gonum/floats/scalar"
)

// Case names a support and load configuration.
type Case string

const (
	CaseCircular    Case = "circular-uniform"
	CaseTwoSide     Case = "two-uniform"
	CaseThreeSide   Case = "three-uniform"
	CaseFourSide    Case = "four-uniform"
	CaseFourPartial Case = "four-partial"
)

func Cases() []Case {
	return []Case{CaseCircular, CaseTwoSide, CaseThreeSide, CaseFourSide, CaseFourPartial}
}

func ParseCase(raw string) (Case, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "circular", "circle":
		return CaseCircular, nil
	case "two", "two-side":
		return CaseTwoSide, nil
	case "three", "three-side":
		return CaseThreeSide, nil
	case "four", "four-side":
		return CaseFourSide, nil
	case "partial", "four-side-partial":
		return CaseFourPartial, nil
	}
	for _, c := range Cases() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown case %q", glass.ErrInvalidInput, raw)
}

// Glazing is the part shared by every request: plies (mm), pressure w
// (N/mm²) and optional material overrides.
type Glazing struct {
	T          []float64        `json:"t"`
	W          float64          `json:"w"`
	Nu         *float64         `json:"nu,omitempty"`
	E          *float64         `json:"E,omitempty"`
	Interlayer glass.Interlayer `json:"interlayer,omitempty"`
}

func (g Glazing) Section() (glass.Section, error) {
	return glass.NewSection(g.T, g.Interlayer)
}

func (g Glazing) Material() (glass.Material, error) {
	m := glass.DefaultMaterial()
	if g.E != nil {
		m.E = *g.E
	}
	if g.Nu != nil {
		m.Nu = *g.Nu
	}
	return glass.NewMaterial(m.E, m.Nu)
}

// Request is implemented by the five case inputs below.
type Request interface {
	Case() Case
	glazing() Glazing
	build(sec glass.Section, mat glass.Material, c Calculator) (plate.Plate, error)
}

type CircularInput struct {
	D float64 `json:"D"`
	Glazing
}

func (in *CircularInput) Case() Case       { return CaseCircular }
func (in *CircularInput) glazing() Glazing { return in.Glazing }
func (in *CircularInput) build(sec glass.Section, mat glass.Material, _ Calculator) (plate.Plate, error) {
	return plate.NewCircularUniform(in.D/2, sec, in.W, mat)
}

type TwoSideInput struct {
	Free float64 `json:"free"`
	Fix  float64 `json:"fix"`
	Glazing
}

func (in *TwoSideInput) Case() Case       { return CaseTwoSide }
func (in *TwoSideInput) glazing() Glazing { return in.Glazing }
func (in *TwoSideInput) build(sec glass.Section, mat glass.Material, _ Calculator) (plate.Plate, error) {
	return plate.NewTwoSideUniform(in.Free, in.Fix, sec, in.W, mat)
}

type ThreeSideInput struct {
	Free float64 `json:"free"`
	Fix  float64 `json:"fix"`
	Glazing
}

func (in *ThreeSideInput) Case() Case       { return CaseThreeSide }
func (in *ThreeSideInput) glazing() Glazing { return in.Glazing }
func (in *ThreeSideInput) build(sec glass.Section, mat glass.Material, _ Calculator) (plate.Plate, error) {
	return plate.NewThreeSideUniform(in.Free, in.Fix, sec, in.W, mat)
}

type FourSideUniformInput struct {
	A float64 `json:"a"` // short edge
	B float64 `json:"b"` // long edge
	Glazing
}

func (in *FourSideUniformInput) Case() Case       { return CaseFourSide }
func (in *FourSideUniformInput) glazing() Glazing { return in.Glazing }
func (in *FourSideUniformInput) build(sec glass.Section, mat glass.Material, _ Calculator) (plate.Plate, error) {
	return plate.NewFourSideUniform(in.A, in.B, sec, in.W, mat)
}

type FourSidePartialInput struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	A1 float64 `json:"a1"`
	B1 float64 `json:"b1"`
	Glazing
}

func (in *FourSidePartialInput) Case() Case       { return CaseFourPartial }
func (in *FourSidePartialInput) glazing() Glazing { return in.Glazing }
func (in *FourSidePartialInput) build(sec glass.Section, mat glass.Material, c Calculator) (plate.Plate, error) {
	return plate.NewFourSidePartial(in.A, in.B, in.A1, in.B1, sec, in.W, mat, plate.WithIndexing(c.PartialIndexing))
}

// Result is the rounded outcome of one calculation.
type Result struct {
	Sigma float64 `json:"sigma"` // N/mm²
	Delta float64 `json:"delta"` // mm
}

// Response carries either a Result or the message of the error that
// prevented it.
type Response struct {
	*Result
	Error string `json:"error,omitempty"`
}

func (r Response) OK() bool { return r.Result != nil && r.Error == "" }

// Calculator evaluates requests. The zero value is ready to use.
type Calculator struct {
	PartialIndexing plate.PartialIndexing
}

// Solve builds the section and the validated plate solver for req.
func (c Calculator) Solve(req Request) (plate.Plate, glass.Section, error) {
	g := req.glazing()
	mat, err := g.Material()
	if err != nil {
		return nil, glass.Section{}, err
	}
	sec, err := g.Section()
	if err != nil {
		return nil, glass.Section{}, err
	}
	p, err := req.build(sec, mat, c)
	if err != nil {
		return nil, glass.Section{}, err
	}
	return p, sec, nil
}

// Calculate returns sigma and delta rounded to two decimals.
func (c Calculator) Calculate(req Request) (Result, error) {
	p, _, err := c.Solve(req)
	if err != nil {
		return Result{}, err
	}
	sigma, delta := p.Stress(), p.Displacement()
	if !finite(sigma) || !finite(delta) {
		return Result{}, fmt.Errorf("%w: result overflows (sigma=%g, delta=%g)", glass.ErrInvalidInput, sigma, delta)
	}
	return Result{Sigma: Round(sigma), Delta: Round(delta)}, nil
}

func finite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// Evaluate is Calculate with the error folded into the response.
func (c Calculator) Evaluate(req Request) Response {
	res, err := c.Calculate(req)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Result: &res}
}

// Round rounds half to even at two decimals.
func Round(x float64) float64 {
	return scalar.RoundEven(x, 2)
}

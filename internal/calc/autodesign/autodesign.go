// Package autodesign picks the thinnest standard monolithic pane that passes
// the allowable-stress check.
package autodesign

import (
	"errors"
	"fmt"

	"github.com/siknue/gpg-back/internal/calc/allowable"
	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/glass"
	"github.com/siknue/gpg-back/internal/calc/plate"
)

var ErrNoSolution = errors.New("no standard thickness satisfies the check")

// StandardThicknesses are nominal float glass thicknesses in mm.
var StandardThicknesses = []float64{3, 4, 5, 6, 8, 10, 12, 15, 19, 25}

type Input struct {
	check.Input
	DeflectionLimitMM float64 `json:"deflectionLimitMM,omitempty"`
}

// Attempt records why a thickness was rejected.
type Attempt struct {
	Thickness float64 `json:"thickness"`
	Reason    string  `json:"reason"`
}

type Result struct {
	Thickness float64      `json:"thickness"`
	Check     check.Result `json:"check"`
	Rejected  []Attempt    `json:"rejected,omitempty"`
	Notes     string       `json:"notes"`
}

func Design(c check.Checker, in Input) (Result, error) {
	if in.DeflectionLimitMM < 0 {
		return Result{}, fmt.Errorf("%w: deflection limit must not be negative", glass.ErrInvalidInput)
	}
	var rejected []Attempt
	for _, t := range StandardThicknesses {
		try := in.Input
		try.T = []float64{t}
		try.Interlayer = ""

		res, err := c.Check(try)
		switch {
		case errors.Is(err, allowable.ErrNoBand), errors.Is(err, plate.ErrOutOfRange):
			rejected = append(rejected, Attempt{Thickness: t, Reason: err.Error()})
			continue
		case err != nil:
			return Result{}, err
		}
		if !res.OK {
			rejected = append(rejected, Attempt{Thickness: t, Reason: fmt.Sprintf("stress %g exceeds allowable %g", res.Sigma, res.Allowable)})
			continue
		}
		if in.DeflectionLimitMM > 0 && res.Delta > in.DeflectionLimitMM {
			rejected = append(rejected, Attempt{Thickness: t, Reason: fmt.Sprintf("deflection %g exceeds limit %g", res.Delta, in.DeflectionLimitMM)})
			continue
		}
		return Result{
			Thickness: t,
			Check:     res,
			Rejected:  rejected,
			Notes:     fmt.Sprintf("Thinnest standard %s pane passing the %s-term check.", res.GlassType, res.Term),
		}, nil
	}
	return Result{Rejected: rejected}, ErrNoSolution
}

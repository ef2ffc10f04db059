// Package check compares a panel's bending stress with the allowable stress
// of its glass type and thickness band.
package check

import (
	"github.com/siknue/gpg-back/internal/calc/allowable"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"github.com/siknue/gpg-back/internal/calc/stress"
)

type Input struct {
	stress.Panel
	GlassType string             `json:"glassType"`
	Term      allowable.Term     `json:"term,omitempty"`
	Location  allowable.Location `json:"location,omitempty"`
}

type Result struct {
	stress.Result
	GlassType    allowable.GlassType `json:"glassType"`
	Term         allowable.Term      `json:"term"`
	Location     allowable.Location  `json:"location"`
	Coefficients plate.Coefficients  `json:"coefficients"`
	Record       allowable.Record    `json:"record"`
	Allowable    float64             `json:"allowable"`
	Utilization  float64             `json:"utilization"`
	OK           bool                `json:"ok"`
}

type Checker struct {
	Calc stress.Calculator
}

// DefaultLocation is where the maximum stress sits: on the free edge for
// panels with unsupported sides, in the field otherwise.
func DefaultLocation(c stress.Case) allowable.Location {
	switch c {
	case stress.CaseTwoSide, stress.CaseThreeSide:
		return allowable.Edge
	}
	return allowable.Inplane
}

func (c Checker) Check(in Input) (Result, error) {
	gt, err := allowable.ParseGlassType(in.GlassType)
	if err != nil {
		return Result{}, err
	}
	term := in.Term
	if term == "" {
		term = allowable.ShortTerm
	}
	loc := in.Location
	if loc == "" {
		loc = DefaultLocation(in.Case)
	}

	req, err := in.Panel.Request()
	if err != nil {
		return Result{}, err
	}
	p, sec, err := c.Calc.Solve(req)
	if err != nil {
		return Result{}, err
	}
	rec, err := allowable.ForSection(gt, sec)
	if err != nil {
		return Result{}, err
	}
	sigma, err := allowable.CheckStress(p.Stress())
	if err != nil {
		return Result{}, err
	}

	limit := rec.Allowable(term, loc)
	res := Result{
		Result:       stress.Result{Sigma: stress.Round(sigma), Delta: stress.Round(p.Displacement())},
		GlassType:    gt,
		Term:         term,
		Location:     loc,
		Coefficients: p.Coefficients(),
		Record:       rec,
		Allowable:    limit,
		OK:           sigma <= limit,
	}
	if limit > 0 {
		res.Utilization = stress.Round(sigma / limit)
	}
	return res, nil
}

package stress

import (
	"fmt"

	"github.com/siknue/gpg-back/internal/calc/glass"
)

// Panel is a flat description of any case. Batch files, spreadsheets and the
// command line produce panels; Request picks the fields its case needs.
type Panel struct {
	Case Case    `json:"case"`
	D    float64 `json:"D,omitempty"`
	Free float64 `json:"free,omitempty"`
	Fix  float64 `json:"fix,omitempty"`
	A    float64 `json:"a,omitempty"`
	B    float64 `json:"b,omitempty"`
	A1   float64 `json:"a1,omitempty"`
	B1   float64 `json:"b1,omitempty"`
	Glazing
}

// Request converts the panel into the typed input for its case.
func (p Panel) Request() (Request, error) {
	switch p.Case {
	case CaseCircular:
		return &CircularInput{D: p.D, Glazing: p.Glazing}, nil
	case CaseTwoSide:
		return &TwoSideInput{Free: p.Free, Fix: p.Fix, Glazing: p.Glazing}, nil
	case CaseThreeSide:
		return &ThreeSideInput{Free: p.Free, Fix: p.Fix, Glazing: p.Glazing}, nil
	case CaseFourSide:
		return &FourSideUniformInput{A: p.A, B: p.B, Glazing: p.Glazing}, nil
	case CaseFourPartial:
		return &FourSidePartialInput{A: p.A, B: p.B, A1: p.A1, B1: p.B1, Glazing: p.Glazing}, nil
	}
	return nil, fmt.Errorf("%w: unknown case %q", glass.ErrInvalidInput, p.Case)
}

// PanelOf flattens a typed request.
func PanelOf(req Request) Panel {
	p := Panel{Case: req.Case(), Glazing: req.glazing()}
	switch in := req.(type) {
	case *CircularInput:
		p.D = in.D
	case *TwoSideInput:
		p.Free, p.Fix = in.Free, in.Fix
	case *ThreeSideInput:
		p.Free, p.Fix = in.Free, in.Fix
	case *FourSideUniformInput:
		p.A, p.B = in.A, in.B
	case *FourSidePartialInput:
		p.A, p.B, p.A1, p.B1 = in.A, in.B, in.A1, in.B1
	}
	return p
}

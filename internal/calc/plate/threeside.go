package plate

import (
	"math"

	"github.com/siknue/gpg-back/internal/calc/glass"
)

// Indexed by fixed/free edge ratio.
var threeSideTable = Table{
	Breakpoints: []float64{0.1, 0.3, 0.5, 0.7, 1.0, 1.2, 1.5, 2, 3, math.Inf(1)},
	Beta:        []float64{0.071, 0.195, 0.350, 0.511, 0.661, 0.715, 0.758, 0.783, 0.791, 0.791},
	Alpha:       []float64{0.005, 0.036, 0.076, 0.108, 0.139, 0.150, 0.158, 0.164, 0.165, 0.165},
}

// ThreeSideUniform is a panel supported on three edges with one free edge of
// length a.
type ThreeSideUniform struct {
	load
	free, fixed float64
	ratio       float64
	coeff       Coefficients
}

func NewThreeSideUniform(free, fixed float64, sec glass.Section, w float64, mat glass.Material) (*ThreeSideUniform, error) {
	if err := positive("free edge", free); err != nil {
		return nil, err
	}
	if err := positive("fixed edge", fixed); err != nil {
		return nil, err
	}
	ratio := fixed / free
	if ratio < 0.1 {
		return nil, outOfRange("b/a is smaller than 0.1. use FEM instead")
	}
	l, err := newLoad(w, sec, mat)
	if err != nil {
		return nil, err
	}
	coeff, err := threeSideTable.Lookup(ratio)
	if err != nil {
		return nil, err
	}
	return &ThreeSideUniform{load: l, free: free, fixed: fixed, ratio: ratio, coeff: coeff}, nil
}

func (p *ThreeSideUniform) EdgeLengthRatio() float64   { return p.ratio }
func (p *ThreeSideUniform) Coefficients() Coefficients { return p.coeff }

func (p *ThreeSideUniform) Stress() float64 {
	return p.uniformStress(p.coeff, p.free)
}

func (p *ThreeSideUniform) Displacement() float64 {
	return p.uniformDisplacement(p.coeff, p.free)
}

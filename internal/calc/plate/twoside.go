package plate

import (
	"math"

	"github.com/siknue/gpg-back/internal/calc/glass"
)

// Indexed by fixed/free edge ratio.
var twoSideTable = Table{
	Breakpoints: []float64{0.5, 1, 2, math.Inf(1)},
	Beta:        []float64{0.765, 0.782, 0.791, 0.791},
	Alpha:       []float64{0.160, 0.163, 0.165, 0.165},
}

// TwoSideUniform is a panel supported on two opposite edges with the other two
// free. The span a is the free edge length.
type TwoSideUniform struct {
	load
	free, fixed float64
	ratio       float64
	coeff       Coefficients
}

func NewTwoSideUniform(free, fixed float64, sec glass.Section, w float64, mat glass.Material) (*TwoSideUniform, error) {
	if err := positive("free edge", free); err != nil {
		return nil, err
	}
	if err := positive("fixed edge", fixed); err != nil {
		return nil, err
	}
	ratio := fixed / free
	if ratio < 0.5 {
		return nil, outOfRange("b/a is smaller than 0.5. use FEM instead")
	}
	l, err := newLoad(w, sec, mat)
	if err != nil {
		return nil, err
	}
	coeff, err := twoSideTable.Lookup(ratio)
	if err != nil {
		return nil, err
	}
	return &TwoSideUniform{load: l, free: free, fixed: fixed, ratio: ratio, coeff: coeff}, nil
}

func (p *TwoSideUniform) EdgeLengthRatio() float64   { return p.ratio }
func (p *TwoSideUniform) Coefficients() Coefficients { return p.coeff }

func (p *TwoSideUniform) Stress() float64 {
	return p.uniformStress(p.coeff, p.free)
}

func (p *TwoSideUniform) Displacement() float64 {
	return p.uniformDisplacement(p.coeff, p.free)
}

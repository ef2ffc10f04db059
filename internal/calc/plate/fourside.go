package plate

import "github.com/siknue/gpg-back/internal/calc/glass"

// Indexed by long/short edge ratio.
var fourSideTable = Table{
	Breakpoints: []float64{1, 1.2, 1.5, 2, 3, 4, 5},
	Beta:        []float64{0.272, 0.362, 0.476, 0.603, 0.711, 0.74, 0.748},
	Alpha:       []float64{0.047, 0.065, 0.088, 0.116, 0.139, 0.146, 0.148},
}

const fourSideMaxRatio = 5

// FourSideUniform is a rectangular panel simply supported on all edges.
type FourSideUniform struct {
	load
	short, long float64
	ratio       float64
	coeff       Coefficients
}

func NewFourSideUniform(short, long float64, sec glass.Section, w float64, mat glass.Material) (*FourSideUniform, error) {
	if err := positive("short edge", short); err != nil {
		return nil, err
	}
	if err := positive("long edge", long); err != nil {
		return nil, err
	}
	if short > long {
		return nil, outOfRange("short edge cannot be longer than long edge")
	}
	// long >= short, so the ratio cannot drop below 1.
	ratio := long / short
	if ratio > fourSideMaxRatio {
		return nil, outOfRange("b/a exceeds %d. use FEM instead", fourSideMaxRatio)
	}
	l, err := newLoad(w, sec, mat)
	if err != nil {
		return nil, err
	}
	coeff, err := fourSideTable.Lookup(ratio)
	if err != nil {
		return nil, err
	}
	return &FourSideUniform{load: l, short: short, long: long, ratio: ratio, coeff: coeff}, nil
}

func (p *FourSideUniform) EdgeLengthRatio() float64   { return p.ratio }
func (p *FourSideUniform) Coefficients() Coefficients { return p.coeff }

func (p *FourSideUniform) Stress() float64 {
	return p.uniformStress(p.coeff, p.short)
}

func (p *FourSideUniform) Displacement() float64 {
	return p.uniformDisplacement(p.coeff, p.short)
}

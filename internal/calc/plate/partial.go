package plate

import (
	"fmt"

	"github.com/siknue/gpg-back/internal/calc/bisect"
	"github.com/siknue/gpg-back/internal/calc/glass"
)

// PartialIndexing selects how the load-length column of the partial-load
// table is chosen.
type PartialIndexing int

const (
	// IndexByLoadLength looks up b1/a in the column list of the selected b/a
	// bracket.
	IndexByLoadLength PartialIndexing = iota
	// IndexLegacy looks up a1/a in the first bracket's column list whatever
	// the bracket. It reproduces results issued by the previous service.
	IndexLegacy
)

func (m PartialIndexing) String() string {
	if m == IndexLegacy {
		return "legacy"
	}
	return "load-length"
}

// ParsePartialIndexing accepts "load-length" (or empty) and "legacy".
func ParsePartialIndexing(s string) (PartialIndexing, error) {
	switch s {
	case "", "load-length":
		return IndexByLoadLength, nil
	case "legacy":
		return IndexLegacy, nil
	}
	return IndexByLoadLength, fmt.Errorf("unknown partial indexing mode %q", s)
}

// PartialOption configures NewFourSidePartial.
type PartialOption func(*FourSidePartial)

func WithIndexing(m PartialIndexing) PartialOption {
	return func(p *FourSidePartial) { p.indexing = m }
}

func WithLegacyIndexing() PartialOption {
	return WithIndexing(IndexLegacy)
}

// partialBracket is the table for one tabulated b/a value: rows by a1/a,
// columns by b1/a.
type partialBracket struct {
	bByA   float64
	b1ByA  []float64
	alphas [][]float64
	betas  [][]float64
}

var partialA1ByA = []float64{0.01, 0.2, 0.4, 0.6, 0.8, 1}

var partialBrackets = []partialBracket{
	{
		bByA:  1,
		b1ByA: []float64{0.01, 0.2, 0.4, 0.6, 0.8, 1},
		betas: [][]float64{
			{2.988, 1.72, 1.322, 1.075, 0.888, 0.732},
			{1.72, 1.206, 1.024, 0.866, 0.729, 0.603},
			{1.322, 1.024, 0.801, 0.694, 0.592, 0.492},
			{1.075, 0.866, 0.694, 0.563, 0.483, 0.403},
			{0.888, 0.729, 0.592, 0.483, 0.397, 0.331},
			{0.732, 0.603, 0.492, 0.403, 0.331, 0.272},
		},
		alphas: [][]float64{
			{0.132, 0.128, 0.118, 0.106, 0.092, 0.077},
			{0.128, 0.124, 0.115, 0.103, 0.09, 0.075},
			{0.118, 0.115, 0.107, 0.097, 0.084, 0.07},
			{0.106, 0.103, 0.097, 0.087, 0.076, 0.064},
			{0.092, 0.09, 0.084, 0.076, 0.066, 0.056},
			{0.077, 0.075, 0.07, 0.064, 0.056, 0.047},
		},
	},
	{
		bByA:  1.4,
		b1ByA: []float64{0.01, 0.4, 0.8, 1.2},
		betas: [][]float64{
			{3.158, 1.501, 1.087, 0.824},
			{1.683, 1.2, 0.925, 0.713},
			{1.286, 0.968, 0.778, 0.61},
			{1.042, 0.794, 0.654, 0.517},
			{0.86, 0.656, 0.546, 0.435},
			{0.708, 0.54, 0.451, 0.36},
		},
		alphas: [][]float64{
			{0.169, 0.156, 0.133, 0.107},
			{0.164, 0.153, 0.13, 0.105},
			{0.153, 0.143, 0.122, 0.099},
			{0.138, 0.129, 0.111, 0.09},
			{0.12, 0.113, 0.097, 0.079},
			{0.101, 0.095, 0.082, 0.066},
		},
	},
	{
		bByA:  2,
		b1ByA: []float64{0.01, 0.4, 0.8, 1.2, 1.6, 2},
		betas: [][]float64{
			{3.226, 1.587, 1.184, 0.942, 0.767, 0.628},
			{1.636, 1.288, 1.023, 0.831, 0.683, 0.561},
			{1.23, 1.051, 0.872, 0.721, 0.598, 0.492},
			{1.01, 0.87, 0.739, 0.62, 0.517, 0.426},
			{0.831, 0.723, 0.622, 0.525, 0.439, 0.363},
			{0.684, 0.596, 0.515, 0.436, 0.365, 0.302},
		},
		alphas: [][]float64{
			{0.188, 0.176, 0.155, 0.133, 0.112, 0.093},
			{0.183, 0.172, 0.152, 0.13, 0.11, 0.091},
			{0.171, 0.161, 0.143, 0.123, 0.104, 0.086},
			{0.154, 0.146, 0.13, 0.112, 0.095, 0.079},
			{0.134, 0.128, 0.114, 0.098, 0.083, 0.069},
			{0.113, 0.107, 0.096, 0.083, 0.07, 0.058},
		},
	},
}

func partialBByA() []float64 {
	out := make([]float64, len(partialBrackets))
	for i, br := range partialBrackets {
		out[i] = br.bByA
	}
	return out
}

// FourSidePartial is a four-side supported panel a×b (a short) loaded on a
// centred a1×b1 footprint.
type FourSidePartial struct {
	load
	a, b, a1, b1 float64
	ratio        float64
	indexing     PartialIndexing
	coeff        Coefficients
}

func NewFourSidePartial(a, b, a1, b1 float64, sec glass.Section, w float64, mat glass.Material, opts ...PartialOption) (*FourSidePartial, error) {
	for _, v := range []struct {
		name string
		v    float64
	}{{"a", a}, {"b", b}, {"a1", a1}, {"b1", b1}} {
		if err := positive(v.name, v.v); err != nil {
			return nil, err
		}
	}
	ratio := b / a
	if ratio < 1 || ratio > 2 {
		return nil, outOfRange("b/a is smaller than 1 or greater than 2. use FEM instead")
	}
	if b1 > b {
		return nil, fmt.Errorf("%w: b1 %g is greater than b %g, the load footprint must lie inside the panel", glass.ErrInvalidInput, b1, b)
	}
	l, err := newLoad(w, sec, mat)
	if err != nil {
		return nil, err
	}
	p := &FourSidePartial{load: l, a: a, b: b, a1: a1, b1: b1, ratio: ratio}
	for _, opt := range opts {
		opt(p)
	}
	p.coeff, err = p.lookup()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FourSidePartial) lookup() (Coefficients, error) {
	bi := bisect.Search(partialBByA(), p.ratio, bisect.Left)
	if bi >= len(partialBrackets) {
		return Coefficients{}, outOfRange("b/a is smaller than 1 or greater than 2. use FEM instead")
	}
	br := partialBrackets[bi]

	a1ByA := p.a1 / p.a
	b1ByA := p.b1 / p.a
	if a1ByA < partialA1ByA[0] || a1ByA > partialA1ByA[len(partialA1ByA)-1] {
		return Coefficients{}, outOfRange("a1/a is smaller than 0.01 or greater than 1. use FEM instead")
	}
	lo, hi := br.b1ByA[0], br.b1ByA[len(br.b1ByA)-1]
	if b1ByA < lo || b1ByA > hi {
		return Coefficients{}, outOfRange("b1/a is smaller than %g or greater than %g. use FEM instead", lo, hi)
	}

	row := bisect.Search(partialA1ByA, a1ByA, bisect.Left)
	var col int
	switch p.indexing {
	case IndexLegacy:
		col = bisect.Search(partialBrackets[0].b1ByA, a1ByA, bisect.Left)
	default:
		col = bisect.Search(br.b1ByA, b1ByA, bisect.Left)
	}
	if col >= len(br.betas[row]) {
		return Coefficients{}, outOfRange("a1/a %g has no column in the b/a = %g table. use FEM instead", a1ByA, br.bByA)
	}
	return Coefficients{Alpha: br.alphas[row][col], Beta: br.betas[row][col]}, nil
}

func (p *FourSidePartial) EdgeLengthRatio() float64   { return p.ratio }
func (p *FourSidePartial) Indexing() PartialIndexing  { return p.indexing }
func (p *FourSidePartial) Coefficients() Coefficients { return p.coeff }

// Stress is β·w·a1·b1/t².
func (p *FourSidePartial) Stress() float64 {
	return p.coeff.Beta * (p.w * p.a1 * p.b1) / (p.t * p.t)
}

// Displacement is α·w·a1·b1·a²/(E·t³).
func (p *FourSidePartial) Displacement() float64 {
	return p.coeff.Alpha * (p.w * p.a1 * p.b1 * p.a * p.a) / (p.e * p.t * p.t * p.t)
}

package plate

import "github.com/siknue/gpg-back/internal/calc/glass"

// Simply supported circular plate, uniform load, nu ≈ 0.22.
var circularCoefficients = Coefficients{Alpha: 0.756, Beta: 1.212}

// CircularUniform is a circular panel supported along its perimeter.
type CircularUniform struct {
	load
	radius float64
}

func NewCircularUniform(radius float64, sec glass.Section, w float64, mat glass.Material) (*CircularUniform, error) {
	if err := positive("radius", radius); err != nil {
		return nil, err
	}
	l, err := newLoad(w, sec, mat)
	if err != nil {
		return nil, err
	}
	return &CircularUniform{load: l, radius: radius}, nil
}

func (p *CircularUniform) Radius() float64 { return p.radius }

func (p *CircularUniform) Coefficients() Coefficients { return circularCoefficients }

func (p *CircularUniform) Stress() float64 {
	return p.uniformStress(circularCoefficients, p.radius)
}

func (p *CircularUniform) Displacement() float64 {
	return p.uniformDisplacement(circularCoefficients, p.radius)
}

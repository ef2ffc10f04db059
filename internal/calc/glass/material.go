package glass

import "fmt"

// Annealed soda-lime glass.
const (
	DefaultE  = 71600.0 // N/mm²
	DefaultNu = 0.22
)

// Material is a linear-elastic isotropic material.
type Material struct {
	E  float64 `json:"E"`
	Nu float64 `json:"nu"`
}

func DefaultMaterial() Material {
	return Material{E: DefaultE, Nu: DefaultNu}
}

// NewMaterial requires E > 0 and 0 <= nu < 0.5.
func NewMaterial(e, nu float64) (Material, error) {
	if !(e > 0) {
		return Material{}, fmt.Errorf("%w: Young's modulus must be positive, got %g", ErrInvalidInput, e)
	}
	if nu < 0 || nu >= 0.5 {
		return Material{}, fmt.Errorf("%w: Poisson's ratio must be in [0, 0.5), got %g", ErrInvalidInput, nu)
	}
	return Material{E: e, Nu: nu}, nil
}

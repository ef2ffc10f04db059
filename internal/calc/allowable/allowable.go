// Package allowable holds published fracture strengths and allowable bending
// stresses of architectural glass, banded by glass type and thickness.
package allowable

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/siknue/gpg-back/internal/calc/bisect"
	"github.com/siknue/gpg-back/internal/calc/glass"
)

var (
	ErrNoBand      = errors.New("invalid glass type or thickness")
	ErrCompressive = errors.New("compressive-stress checks are not permitted")
)

type GlassType string

const (
	Float         GlassType = "float"
	Wired         GlassType = "wired"
	WirePatterned GlassType = "wirePatterned"
	Tempered      GlassType = "tempered"
	Double        GlassType = "double" // heat-strengthened
)

// ParseGlassType is case-insensitive and accepts the old "wirePatterend"
// spelling still sent by some clients.
func ParseGlassType(s string) (GlassType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float":
		return Float, nil
	case "wired":
		return Wired, nil
	case "wirepatterned", "wirepatterend", "wire-patterned":
		return WirePatterned, nil
	case "tempered":
		return Tempered, nil
	case "double":
		return Double, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNoBand, s)
}

// Term is the load duration class.
type Term string

const (
	ShortTerm Term = "short"
	LongTerm  Term = "long"
)

// Location distinguishes stress in the panel face from stress at a cut edge.
type Location string

const (
	Inplane Location = "inplane"
	Edge    Location = "edge"
)

// Limits is a pair of stresses in N/mm².
type Limits struct {
	Inplane float64 `json:"inplane"`
	Edge    float64 `json:"edge"`
}

func (l Limits) At(loc Location) float64 {
	if loc == Edge {
		return l.Edge
	}
	return l.Inplane
}

// Record is one row of the allowable-stress table.
type Record struct {
	Fracture  Limits `json:"fractureStrength"`
	ShortTerm Limits `json:"shortTerm"`
	LongTerm  Limits `json:"longTerm"`
}

// Allowable returns the allowable stress for a duration and location.
func (r Record) Allowable(term Term, loc Location) float64 {
	if term == LongTerm {
		return r.LongTerm.At(loc)
	}
	return r.ShortTerm.At(loc)
}

// band covers (min, upper[0]], (upper[0], upper[1]], ... for one glass type.
// minInclusive closes the lower end.
type band struct {
	min          float64
	minInclusive bool
	upper        []float64
	records      []Record
}

var bands = map[GlassType]band{
	Float: {
		min:   0,
		upper: []float64{8, 12, 20, math.Inf(1)},
		records: []Record{
			{Limits{54.9, 35.3}, Limits{24.5, 17.7}, Limits{9.8, 6.9}},
			{Limits{51.5, 35.3}, Limits{22.1, 17.7}, Limits{8.8, 6.9}},
			{Limits{48.1, 35.3}, Limits{19.6, 17.7}, Limits{7.8, 6.9}},
			{Limits{46.6, 35.3}, Limits{18.6, 17.7}, Limits{7.4, 6.9}},
		},
	},
	Wired: {
		min:          6,
		minInclusive: true,
		upper:        []float64{10},
		records:      []Record{{Limits{36.8, 19.6}, Limits{19.6, 9.8}, Limits{7.8, 3.9}}},
	},
	WirePatterned: {
		min:          6,
		minInclusive: true,
		upper:        []float64{8},
		records:      []Record{{Limits{29.4, 19.6}, Limits{14.7, 9.8}, Limits{5.9, 3.9}}},
	},
	Tempered: {
		min:          4,
		minInclusive: true,
		upper:        []float64{19},
		records:      []Record{{Limits{142.2, 131.4}, Limits{88.3, 79.4}, Limits{73.5, 68.6}}},
	},
	Double: {
		min:          6,
		minInclusive: true,
		upper:        []float64{12},
		records:      []Record{{Limits{78.5, 70.6}, Limits{44.1, 35.3}, Limits{29.4, 24.5}}},
	},
}

func (b band) lookup(t float64) (Record, bool) {
	if t < b.min || (t == b.min && !b.minInclusive) {
		return Record{}, false
	}
	i := bisect.Search(b.upper, t, bisect.Left)
	if i >= len(b.records) {
		return Record{}, false
	}
	return b.records[i], true
}

// Lookup finds the record for a glass type at thickness t (mm).
func Lookup(gt GlassType, t float64) (Record, error) {
	b, ok := bands[gt]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s, %g", ErrNoBand, gt, t)
	}
	rec, ok := b.lookup(t)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s, %g", ErrNoBand, gt, t)
	}
	return rec, nil
}

// ForSection sizes the band by the thinner of the two outer plies.
func ForSection(gt GlassType, sec glass.Section) (Record, error) {
	first, last := sec.OuterThicknesses()
	return Lookup(gt, math.Min(first, last))
}

// Types lists the glass types with tabulated bands.
func Types() []GlassType {
	return []GlassType{Float, Wired, WirePatterned, Tempered, Double}
}

// CheckStress passes tensile (non-negative) stresses through unchanged.
func CheckStress(stress float64) (float64, error) {
	if stress < 0 {
		return 0, ErrCompressive
	}
	return stress, nil
}

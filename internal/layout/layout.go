// Package layout computes where the units of a row go and how their surface varies.
// Everything here is a pure function of the layout spec and the unit index.
package layout

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var ErrInvalidLayout = errors.New("invalid layout")

type Arrangement int

const (
	Uniform Arrangement = iota
	NonUniform
)

func (a Arrangement) String() string {
	if a == NonUniform {
		return "non-uniform"
	}
	return "uniform"
}

// ParseArrangement accepts "uniform" and "non-uniform" (or "nonuniform")
func ParseArrangement(s string) (Arrangement, error) {
	switch s {
	case "uniform":
		return Uniform, nil
	case "non-uniform", "nonuniform", "non uniform":
		return NonUniform, nil
	}
	return 0, fmt.Errorf("%w: unknown arrangement %q", ErrInvalidLayout, s)
}

// Toggle returns the other arrangement
func (a Arrangement) Toggle() Arrangement {
	if a == Uniform {
		return NonUniform
	}
	return Uniform
}

// Spec drives layout generation
type Spec struct {
	Count       int
	BaseSpacing float32
	Arrangement Arrangement
}

func (s Spec) Validate() error {
	if s.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidLayout, s.Count)
	}
	if !(s.BaseSpacing > 0) {
		return fmt.Errorf("%w: spacing must be > 0, got %v", ErrInvalidLayout, s.BaseSpacing)
	}
	if s.Arrangement != Uniform && s.Arrangement != NonUniform {
		return fmt.Errorf("%w: arrangement %d", ErrInvalidLayout, int(s.Arrangement))
	}
	return nil
}

// Variation is the surface response assigned to one unit
type Variation struct {
	Roughness float32
	Metalness float32
}

// Placement is the generated state of one unit
type Placement struct {
	Index     int
	X         float32
	RotationY float32 // radians about +Y
	Variation
}

// Generate lays out the whole row for spec
func Generate(spec Spec) ([]Placement, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Arrangement == NonUniform {
		return NonUniformLayout(spec.Count, spec.BaseSpacing), nil
	}
	return UniformLayout(spec.Count, spec.BaseSpacing), nil
}

// UniformLayout spaces count units evenly around x = 0
func UniformLayout(count int, spacing float32) []Placement {
	out := newPlacements(count)
	center := float32(count-1) / 2
	for i := range out {
		out[i].X = (float32(i) - center) * spacing
	}
	return out
}

// NonUniformLayout spaces units by Gaps and centers the total span on x = 0
func NonUniformLayout(count int, baseSpacing float32) []Placement {
	gaps := Gaps(count, baseSpacing)
	var total float32
	for _, g := range gaps {
		total += g
	}

	out := newPlacements(count)
	x := -total / 2
	for i := range out {
		if i > 0 {
			x += gaps[i-1]
		}
		out[i].X = x
	}
	return out
}

// Gaps returns the count-1 distances between neighbours: base * (1 + 0.2 sin(i π/3))
func Gaps(count int, baseSpacing float32) []float32 {
	if count < 2 {
		return nil
	}
	gaps := make([]float32, count-1)
	for i := range gaps {
		gaps[i] = baseSpacing * (1 + 0.2*math32.Sin(float32(i)*math32.Pi/3))
	}
	return gaps
}

// MaterialVariations interpolates roughness 0.9 -> 0.2 and metalness 0 -> 1 across the row.
// A single unit gets t = 0.
func MaterialVariations(count int) []Variation {
	out := make([]Variation, count)
	for i := range out {
		out[i] = VariationAt(i, count)
	}
	return out
}

// VariationAt returns the variation of unit i in a row of count units
func VariationAt(i, count int) Variation {
	var t float32
	if count > 1 {
		t = float32(i) / float32(count-1)
	}
	return Variation{Roughness: 0.9 - 0.7*t, Metalness: t}
}

// newPlacements fills index, alternating orientation and material variation
func newPlacements(count int) []Placement {
	if count < 0 {
		count = 0
	}
	out := make([]Placement, count)
	for i := range out {
		rot := math32.Pi / 2
		if i%2 != 0 {
			rot = -rot
		}
		out[i] = Placement{Index: i, RotationY: rot, Variation: VariationAt(i, count)}
	}
	return out
}

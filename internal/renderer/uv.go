package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
)

// UVMode selects how surface points are projected onto texture space
type UVMode int

const (
	UVCylindrical UVMode = iota
	UVSpherical
)

func (m UVMode) String() string {
	switch m {
	case UVCylindrical:
		return "cylindrical"
	case UVSpherical:
		return "spherical"
	}
	return fmt.Sprintf("UVMode(%d)", int(m))
}

// ParseUVMode accepts "cylindrical" or "spherical"
func ParseUVMode(s string) (UVMode, error) {
	switch s {
	case "cylindrical":
		return UVCylindrical, nil
	case "spherical":
		return UVSpherical, nil
	}
	return 0, fmt.Errorf("unknown uv mode %q", s)
}

// ProjectUV overwrites the UVs of g using the given projection
func ProjectUV(g *Geometry, mode UVMode) {
	switch mode {
	case UVSpherical:
		SphericalUV(g)
	default:
		CylindricalUV(g)
	}
}

// CylindricalUV wraps u around the Y axis and spreads v over the mesh height.
// A flat mesh (zero height) gets v = 0 everywhere.
func CylindricalUV(g *Geometry) {
	if g == nil || len(g.Positions) == 0 {
		return
	}
	lo, hi := g.BoundingBox()
	height := hi.Y() - lo.Y()

	n := g.VertexCount()
	uvs := make([]float32, n*2)
	for i := 0; i < n; i++ {
		p := g.Position(i)
		u := azimuth(p.X(), p.Z())
		var v float32
		if height != 0 {
			v = (p.Y() - lo.Y()) / height
		}
		uvs[i*2] = u
		uvs[i*2+1] = v
	}
	g.UVs = uvs
}

// SphericalUV maps longitude to u and polar angle to v.
// A vertex at the origin gets (0, 0).
func SphericalUV(g *Geometry) {
	if g == nil || len(g.Positions) == 0 {
		return
	}

	n := g.VertexCount()
	uvs := make([]float32, n*2)
	for i := 0; i < n; i++ {
		p := g.Position(i)
		r := p.Len()
		if r == 0 {
			continue
		}
		c := p.Y() / r
		if c > 1 {
			c = 1
		} else if c < -1 {
			c = -1
		}
		uvs[i*2] = azimuth(p.X(), p.Z())
		uvs[i*2+1] = math32.Acos(c) / math32.Pi
	}
	g.UVs = uvs
}

// azimuth maps atan2(z, x) to [0,1). atan2 returns +π for (x<0, z=+0) which would give exactly 1.
func azimuth(x, z float32) float32 {
	u := (math32.Atan2(z, x) + math32.Pi) / (2 * math32.Pi)
	if u >= 1 {
		u = 0
	}
	return u
}

package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertUVsInUnitRange(t *testing.T, g *Geometry) {
	t.Helper()
	require.Len(t, g.UVs, g.VertexCount()*2)
	for i := 0; i < g.VertexCount(); i++ {
		u, v := g.UVs[i*2], g.UVs[i*2+1]
		assert.True(t, u >= 0 && u < 1, "u=%v out of [0,1) at vertex %d", u, i)
		assert.True(t, v >= 0 && v <= 1, "v=%v out of [0,1] at vertex %d", v, i)
	}
}

func TestCylindricalUVRangeAndIdempotence(t *testing.T) {
	g := NewBoxGeometry(0.8, 2, 0.3)

	CylindricalUV(g)
	assertUVsInUnitRange(t, g)
	first := append([]float32(nil), g.UVs...)

	CylindricalUV(g)
	assert.Equal(t, first, g.UVs)
}

func TestCylindricalUVKnownValues(t *testing.T) {
	g := &Geometry{Positions: []float32{
		1, -1, 0,
		0, 1, 1,
		-1, 0, -1,
	}}
	CylindricalUV(g)

	assert.InDelta(t, 0.5, g.UVs[0], 1e-6)
	assert.InDelta(t, 0.0, g.UVs[1], 1e-6)
	assert.InDelta(t, 0.75, g.UVs[2], 1e-6)
	assert.InDelta(t, 1.0, g.UVs[3], 1e-6)
	assert.InDelta(t, 0.125, g.UVs[4], 1e-6)
	assert.InDelta(t, 0.5, g.UVs[5], 1e-6)
}

func TestCylindricalUVFlatMesh(t *testing.T) {
	g := &Geometry{Positions: []float32{
		1, 0, 0,
		0, 0, 1,
		-1, 0, 0,
	}}
	CylindricalUV(g)
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(0), g.UVs[i*2+1])
		assert.False(t, math32.IsNaN(g.UVs[i*2]))
	}
}

func TestCylindricalUVUsesCurrentBounds(t *testing.T) {
	g := &Geometry{Positions: []float32{1, 0, 0, 1, 2, 0}}
	CylindricalUV(g)
	assert.Equal(t, float32(1), g.UVs[3])

	g.Positions[4] = 4
	CylindricalUV(g)
	assert.Equal(t, float32(1), g.UVs[3])
	assert.Equal(t, float32(0), g.UVs[1])
}

func TestSphericalUVRangeAndIdempotence(t *testing.T) {
	g := NewSphereGeometry(0.5, 16, 12)

	SphericalUV(g)
	assertUVsInUnitRange(t, g)
	first := append([]float32(nil), g.UVs...)

	SphericalUV(g)
	assert.Equal(t, first, g.UVs)
}

func TestSphericalUVKnownValues(t *testing.T) {
	g := &Geometry{Positions: []float32{
		0, 2, 0,
		0, -3, 0,
		1, 0, 0,
		0, 0, 0,
	}}
	SphericalUV(g)

	assert.InDelta(t, 0.0, g.UVs[1], 1e-6)
	assert.InDelta(t, 1.0, g.UVs[3], 1e-6)
	assert.InDelta(t, 0.5, g.UVs[4], 1e-6)
	assert.InDelta(t, 0.5, g.UVs[5], 1e-6)
	assert.Equal(t, float32(0), g.UVs[6], "vertex at origin maps to u=0")
	assert.Equal(t, float32(0), g.UVs[7], "vertex at origin maps to v=0")
}

func TestProjectUVOverwritesExistingCoordinates(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	original := append([]float32(nil), g.UVs...)

	ProjectUV(g, UVSpherical)
	assert.NotEqual(t, original, g.UVs)
	spherical := append([]float32(nil), g.UVs...)

	ProjectUV(g, UVCylindrical)
	assert.NotEqual(t, spherical, g.UVs)
}

func TestParseUVMode(t *testing.T) {
	m, err := ParseUVMode("spherical")
	require.NoError(t, err)
	assert.Equal(t, UVSpherical, m)
	assert.Equal(t, "cylindrical", UVCylindrical.String())

	_, err = ParseUVMode("planar")
	assert.Error(t, err)
}

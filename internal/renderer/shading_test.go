package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shadeDelta = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestParseShadingAlgorithm(t *testing.T) {
	for in, want := range map[string]ShadingAlgorithm{
		"vertex": VertexShading, "gouraud": VertexShading,
		"fragment": FragmentShading, "phong": FragmentShading,
	} {
		got, err := ParseShadingAlgorithm(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseShadingAlgorithm("flat")
	assert.Error(t, err)

	assert.Equal(t, FragmentShading, VertexShading.Toggle())
	assert.Equal(t, VertexShading, FragmentShading.Toggle())
}

func TestIlluminateAmbientOnly(t *testing.T) {
	in := ShadingInputs{
		DiffuseColor: mgl32.Vec3{0, 1, 0},
		Ambient:      mgl32.Vec3{0.25, 0.25, 0.25},
	}
	got := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 10})
	assert.Equal(t, mgl32.Vec3{0, 0.25, 0}, got)
}

func TestIlluminateHeadOnDiffuse(t *testing.T) {
	in := ShadingInputs{
		DiffuseColor:    mgl32.Vec3{0.5, 0.5, 0.5},
		NumActiveLights: 1,
	}
	in.Lights[0] = PointLightUniform{Position: mgl32.Vec3{0, 0, 10}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1}

	got := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{3, 0, 10})
	assertVec3InDelta(t, mgl32.Vec3{0.5, 0.5, 0.5}, got, shadeDelta)
}

func TestIlluminateSpecularScalesWithMetalness(t *testing.T) {
	in := ShadingInputs{
		Metalness:       1,
		NumActiveLights: 1,
	}
	in.Lights[0] = PointLightUniform{Position: mgl32.Vec3{0, 0, 10}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.2}

	got := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 5})
	assertVec3InDelta(t, mgl32.Vec3{0.2, 0.2, 0.2}, got, shadeDelta)

	in.Metalness = 0
	got = Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 5})
	assertVec3InDelta(t, mgl32.Vec3{}, got, shadeDelta)
}

func TestIlluminateStopsAtActiveCount(t *testing.T) {
	in := ShadingInputs{
		DiffuseColor:    mgl32.Vec3{1, 1, 1},
		Ambient:         mgl32.Vec3{0.1, 0.1, 0.1},
		NumActiveLights: 1,
	}
	in.Lights[0] = PointLightUniform{Position: mgl32.Vec3{0, 0, 10}, Color: mgl32.Vec3{0.2, 0.2, 0.2}, Intensity: 1}
	in.Lights[1] = PointLightUniform{Position: mgl32.Vec3{0, 0, 10}, Color: mgl32.Vec3{1, 0, 0}, Intensity: 1}

	withExtra := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 10})

	in.Lights[1] = PointLightUniform{}
	without := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 10})

	assert.Equal(t, without, withExtra, "lights past the active count must not contribute")
	assertVec3InDelta(t, mgl32.Vec3{0.3, 0.3, 0.3}, without, shadeDelta)
}

func TestIlluminateRoughnessDampensOnce(t *testing.T) {
	in := ShadingInputs{
		DiffuseColor: mgl32.Vec3{1, 1, 1},
		Ambient:      mgl32.Vec3{0.5, 0.5, 0.5},
		Roughness:    1,
	}
	got := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 5, 0})
	assertVec3InDelta(t, mgl32.Vec3{0.25, 0.25, 0.25}, got, shadeDelta)

	in.Roughness = 0.5
	got = Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 5, 0})
	// mix(0.5, 0.5*0.75, 0.5)
	assertVec3InDelta(t, mgl32.Vec3{0.4375, 0.4375, 0.4375}, got, shadeDelta)
}

func TestIlluminateClampsToUnitRange(t *testing.T) {
	in := ShadingInputs{
		DiffuseColor:    mgl32.Vec3{1, 1, 1},
		Ambient:         mgl32.Vec3{1, 1, 1},
		Metalness:       1,
		NumActiveLights: 3,
	}
	for i := range in.Lights {
		in.Lights[i] = PointLightUniform{Position: mgl32.Vec3{0, 0, 10}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 5}
	}
	got := Illuminate(&in, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 10})
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, got)
}

func flatTriangle() [3]SurfacePoint {
	n := mgl32.Vec3{0, 0, 1}
	return [3]SurfacePoint{
		{Position: mgl32.Vec3{-1, -1, 0}, Normal: n, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, -1, 0}, Normal: n, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{0, 1, 0}, Normal: n, UV: mgl32.Vec2{0.5, 1}},
	}
}

func litInputs() ShadingInputs {
	in := ShadingInputs{
		DiffuseColor:    mgl32.Vec3{0, 1, 0},
		Roughness:       0.55,
		Metalness:       0.5,
		Ambient:         Color(0x404040).Vec3(),
		NumActiveLights: 2,
	}
	in.Lights[0] = PointLightUniform{Position: mgl32.Vec3{5, 10, 7}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.8}
	in.Lights[1] = PointLightUniform{Position: mgl32.Vec3{-5, 8, -7}, Color: Color(0xffa500).Vec3(), Intensity: 0.6}
	return in
}

func TestShadingAlgorithmsAgreeAtFlatSamplePoints(t *testing.T) {
	in := litInputs()
	tri := flatTriangle()
	view := mgl32.Vec3{0, 3, 10}

	for _, bary := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		v := VertexShading.Shade(&in, tri, bary, view, nil)
		f := FragmentShading.Shade(&in, tri, bary, view, nil)
		assert.Equal(t, v, f, "bary %v", bary)
	}
}

func TestShadingAlgorithmsAgreeUnderAmbientOnly(t *testing.T) {
	in := litInputs()
	in.NumActiveLights = 0
	tri := flatTriangle()
	view := mgl32.Vec3{0, 3, 10}

	bary := mgl32.Vec3{0.2, 0.3, 0.5}
	v := VertexShading.Shade(&in, tri, bary, view, nil)
	f := FragmentShading.Shade(&in, tri, bary, view, nil)
	assertVec3InDelta(t, f, v, shadeDelta)
}

type constSampler mgl32.Vec3

func (c constSampler) Sample(mgl32.Vec2) mgl32.Vec3 { return mgl32.Vec3(c) }

func TestShadeMultipliesTexture(t *testing.T) {
	in := ShadingInputs{DiffuseColor: mgl32.Vec3{1, 1, 1}, Ambient: mgl32.Vec3{0.8, 0.8, 0.8}}
	tri := flatTriangle()
	bary := mgl32.Vec3{1, 0, 0}

	for _, alg := range []ShadingAlgorithm{VertexShading, FragmentShading} {
		got := alg.Shade(&in, tri, bary, mgl32.Vec3{0, 0, 5}, constSampler{0.5, 1, 0})
		assertVec3InDelta(t, mgl32.Vec3{0.4, 0.8, 0}, got, shadeDelta)
	}
}

func TestPreparedShaderMatchesShade(t *testing.T) {
	in := litInputs()
	tri := flatTriangle()
	view := mgl32.Vec3{0, 3, 10}
	tex := constSampler{0.5, 1, 0.25}

	for _, alg := range []ShadingAlgorithm{VertexShading, FragmentShading} {
		s := alg.Prepare(&in, tri, view, tex)
		for _, bary := range []mgl32.Vec3{{1, 0, 0}, {0.2, 0.3, 0.5}, {0.6, 0.1, 0.3}} {
			want := alg.Shade(&in, tri, bary, view, tex)
			if got := s.At(bary); got != want {
				t.Errorf("Expected %v for %s at %v, got %v", want, alg, bary, got)
			}
		}
	}
}

func TestPreparedShaderSnapshotsInputs(t *testing.T) {
	in := litInputs()
	tri := flatTriangle()
	view := mgl32.Vec3{0, 3, 10}
	bary := mgl32.Vec3{0.2, 0.3, 0.5}

	s := FragmentShading.Prepare(&in, tri, view, nil)
	before := s.At(bary)
	in.NumActiveLights = 0
	in.DiffuseColor = mgl32.Vec3{1, 0, 0}

	if after := s.At(bary); after != before {
		t.Errorf("Expected prepared shader to keep %v, got %v", before, after)
	}
}

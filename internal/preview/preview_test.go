package preview

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Domino3D/internal/renderer"
)

func testUnit(t *testing.T, shading renderer.ShadingAlgorithm) *renderer.Unit {
	t.Helper()
	mc := renderer.NewMaterialCache(
		renderer.NewTextureManager(renderer.TextureOptions{Size: 16, CheckerSquares: 4}),
		renderer.NewProgramLibrary(),
		renderer.DefaultLightingModel())
	h, err := mc.Get(renderer.MaterialParams{BaseColor: 0x00ff00, Roughness: 0.5, Metalness: 0.25, Shading: shading})
	require.NoError(t, err)
	return renderer.NewUnit(renderer.NewBoxGeometry(1, 1, 1), h, renderer.StandardUnit)
}

func TestCameraCentersTarget(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)

	clip := cam.GetViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-6)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-6)
	assert.InDelta(t, 5, clip.W(), 1e-5)
}

func TestFrustumRejectsPointsBehindCamera(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
	f := cam.CalculateFrustum()

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 0.5))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 20}, 0.5))
}

func TestRasterizerShadesVisibleFace(t *testing.T) {
	for _, alg := range []renderer.ShadingAlgorithm{renderer.VertexShading, renderer.FragmentShading} {
		t.Run(alg.String(), func(t *testing.T) {
			cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
			r := NewRasterizer(cam, 64, 64)

			r.DrawUnits([]*renderer.Unit{testUnit(t, alg)})

			center := r.Image().RGBAAt(32, 32)
			assert.Greater(t, center.G, uint8(0))
			assert.GreaterOrEqual(t, center.G, center.R)
			assert.Equal(t, color.RGBA{A: 255}, r.Image().RGBAAt(0, 0))
			assert.Equal(t, 1, r.Stats.UnitsDrawn)
			assert.Greater(t, r.Stats.PixelsShaded, 0)
			assert.Equal(t, 2, r.Stats.TrianglesDrawn, "only the front face is visible head on")
		})
	}
}

func TestRasterizerCullsUnitsOutsideView(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
	r := NewRasterizer(cam, 32, 32)
	u := testUnit(t, renderer.FragmentShading)
	u.SetPosition(0, 0, 30)

	r.DrawUnits([]*renderer.Unit{u})

	assert.Equal(t, 1, r.Stats.UnitsCulled)
	assert.Equal(t, 0, r.Stats.PixelsShaded)
}

func TestClearResetsImage(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
	r := NewRasterizer(cam, 16, 16)
	r.DrawUnits([]*renderer.Unit{testUnit(t, renderer.FragmentShading)})

	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	r.Clear(bg)

	assert.Equal(t, bg, r.Image().RGBAAt(8, 8))
	assert.Equal(t, Stats{}, r.Stats)
}

func TestCameraLookAtRecentersView(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
	target := mgl32.Vec3{2, 1, 0}

	cam.LookAt(target)

	clip := cam.GetViewProjection().Mul4x1(target.Vec4(1))
	if x := clip.X() / clip.W(); x > 1e-5 || x < -1e-5 {
		t.Errorf("Expected target at screen center x, got %v", x)
	}
	if y := clip.Y() / clip.W(); y > 1e-5 || y < -1e-5 {
		t.Errorf("Expected target at screen center y, got %v", y)
	}
}

func TestCameraSetFovUpdatesProjection(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 1)
	wide := cam.Projection

	cam.SetFov(20)

	if cam.Fov != 20 {
		t.Errorf("Expected fov 20, got %v", cam.Fov)
	}
	if cam.Projection == wide {
		t.Fatal("Expected SetFov to rebuild the projection")
	}
	// A narrower field of view magnifies, so the focal term grows
	if cam.Projection.At(1, 1) <= wide.At(1, 1) {
		t.Errorf("Expected focal term above %v, got %v", wide.At(1, 1), cam.Projection.At(1, 1))
	}
}

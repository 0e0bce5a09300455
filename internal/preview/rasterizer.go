package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Domino3D/internal/logger"
	"Domino3D/internal/renderer"
)

// Stats counts the work done since the last Clear
type Stats struct {
	UnitsDrawn     int
	UnitsCulled    int
	TrianglesDrawn int
	PixelsShaded   int
}

// Rasterizer draws units into an RGBA image by evaluating each unit's
// material at every covered pixel.
type Rasterizer struct {
	camera *Camera
	img    *image.RGBA
	depth  []float32
	Stats  Stats
}

func NewRasterizer(camera *Camera, width, height int) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float32, width*height),
	}
	r.Clear(color.RGBA{A: 255})
	return r
}

// Clear fills the image with bg and resets depth and stats
func (r *Rasterizer) Clear(bg color.RGBA) {
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i], r.img.Pix[i+1], r.img.Pix[i+2], r.img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	for i := range r.depth {
		r.depth[i] = math.MaxFloat32
	}
	r.Stats = Stats{}
}

func (r *Rasterizer) Image() *image.RGBA {
	return r.img
}

// DrawUnits draws every unit that survives frustum culling
func (r *Rasterizer) DrawUnits(units []*renderer.Unit) {
	frustum := r.camera.CalculateFrustum()
	for _, u := range units {
		lo, hi := u.Geometry.BoundingBox()
		center := u.ModelMatrix.Mul4x1(lo.Add(hi).Mul(0.5).Vec4(1)).Vec3()
		radius := hi.Sub(lo).Len() / 2
		if !frustum.IntersectsSphere(center, radius) {
			r.Stats.UnitsCulled++
			continue
		}
		r.DrawUnit(u)
	}
	logger.Log.Debug("Preview drawn",
		zap.Int("unitsDrawn", r.Stats.UnitsDrawn),
		zap.Int("unitsCulled", r.Stats.UnitsCulled),
		zap.Int("triangles", r.Stats.TrianglesDrawn))
}

// DrawUnit draws all front-facing triangles of a unit
func (r *Rasterizer) DrawUnit(u *renderer.Unit) {
	r.Stats.UnitsDrawn++
	for t := 0; t < u.Geometry.TriangleCount(); t++ {
		r.drawTriangle(u.Material, u.WorldTriangle(t))
	}
}

type screenVertex struct {
	X, Y, Z float32
	W       float32
}

func (r *Rasterizer) drawTriangle(m *renderer.MaterialHandle, tri [3]renderer.SurfacePoint) {
	viewProj := r.camera.GetViewProjection()
	width, height := r.img.Rect.Dx(), r.img.Rect.Dy()

	var sv [3]screenVertex
	for i := range tri {
		clip := viewProj.Mul4x1(tri[i].Position.Vec4(1))
		// Triangles crossing the near plane are dropped rather than clipped
		if clip.W() <= r.camera.Near {
			return
		}
		sv[i] = screenVertex{
			X: (clip.X()/clip.W() + 1) * 0.5 * float32(width),
			Y: (1 - clip.Y()/clip.W()) * 0.5 * float32(height),
			Z: clip.Z() / clip.W(),
			W: clip.W(),
		}
	}

	// Counter-clockwise in NDC is clockwise once y is flipped
	area := edge(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	if area >= 0 {
		return
	}
	r.Stats.TrianglesDrawn++

	minX := int(math32.Max(0, math32.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math32.Min(float32(width-1), math32.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math32.Max(0, math32.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math32.Min(float32(height-1), math32.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	shader := m.Prepare(tri, r.camera.Position)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			b0 := edge(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y, px, py) / area
			b1 := edge(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y, px, py) / area
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*sv[0].Z + b1*sv[1].Z + b2*sv[2].Z
			idx := y*width + x
			if z >= r.depth[idx] {
				continue
			}

			// Perspective-correct weights
			w0, w1, w2 := b0/sv[0].W, b1/sv[1].W, b2/sv[2].W
			sum := w0 + w1 + w2
			bary := mgl32.Vec3{w0 / sum, w1 / sum, w2 / sum}

			c := shader.At(bary)
			r.depth[idx] = z
			r.img.SetRGBA(x, y, toRGBA(c))
			r.Stats.PixelsShaded++
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}

func toRGBA(c mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1)*255 + 0.5),
		G: uint8(mgl32.Clamp(c[1], 0, 1)*255 + 0.5),
		B: uint8(mgl32.Clamp(c[2], 0, 1)*255 + 0.5),
		A: 255,
	}
}

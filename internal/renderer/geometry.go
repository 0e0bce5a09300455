package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Domino3D/internal/logger"
)

// Geometry is an indexed triangle mesh shared between units.
// Positions and Normals hold 3 floats per vertex, UVs hold 2.
type Geometry struct {
	Key       string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// SurfacePoint is one shading input: object-space position, unit normal and texture coordinate
type SurfacePoint struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexCount returns the number of vertices in the mesh
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of indexed triangles
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

func (g *Geometry) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

func (g *Geometry) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2]}
}

// UV returns the texture coordinate of vertex i, or zero if the mesh carries none
func (g *Geometry) UV(i int) mgl32.Vec2 {
	if i*2+1 >= len(g.UVs) {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{g.UVs[i*2], g.UVs[i*2+1]}
}

// Vertex returns vertex i as a surface point
func (g *Geometry) Vertex(i int) SurfacePoint {
	return SurfacePoint{Position: g.Position(i), Normal: g.Normal(i), UV: g.UV(i)}
}

// Triangle returns the three corners of triangle t
func (g *Geometry) Triangle(t int) [3]SurfacePoint {
	return [3]SurfacePoint{
		g.Vertex(int(g.Indices[t*3])),
		g.Vertex(int(g.Indices[t*3+1])),
		g.Vertex(int(g.Indices[t*3+2])),
	}
}

// BoundingBox computes the axis-aligned bounds of the positions. It is not cached.
func (g *Geometry) BoundingBox() (lo, hi mgl32.Vec3) {
	n := g.VertexCount()
	if n == 0 {
		return
	}
	lo = g.Position(0)
	hi = lo
	for i := 1; i < n; i++ {
		p := g.Position(i)
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return
}

// NewBoxGeometry builds a box centered at the origin with 4 vertices per face
// so every face has its own flat normal and a full [0,1] UV square.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	g := &Geometry{
		Key:       boxKey(width, height, depth),
		Positions: make([]float32, 0, 24*3),
		Normals:   make([]float32, 0, 24*3),
		UVs:       make([]float32, 0, 24*2),
		Indices:   make([]uint32, 0, 36),
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {
		base := uint32(g.VertexCount())
		center := mulComp(f.n, half)
		uExt := mulComp(f.u, half)
		vExt := mulComp(f.v, half)
		for _, c := range corners {
			p := center.Add(uExt.Mul(c[0])).Add(vExt.Mul(c[1]))
			g.Positions = append(g.Positions, p.X(), p.Y(), p.Z())
			g.Normals = append(g.Normals, f.n.X(), f.n.Y(), f.n.Z())
			g.UVs = append(g.UVs, (c[0]+1)/2, (c[1]+1)/2)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewSphereGeometry builds a latitude/longitude sphere centered at the origin
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{Key: sphereKey(radius, widthSegments, heightSegments)}
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			theta := u * 2 * math32.Pi
			phi := v * math32.Pi
			n := mgl32.Vec3{
				-math32.Cos(theta) * math32.Sin(phi),
				math32.Cos(phi),
				math32.Sin(theta) * math32.Sin(phi),
			}
			p := n.Mul(radius)
			g.Positions = append(g.Positions, p.X(), p.Y(), p.Z())
			g.Normals = append(g.Normals, n.X(), n.Y(), n.Z())
			g.UVs = append(g.UVs, u, 1-v)
		}
	}

	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

func mulComp(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func boxKey(width, height, depth float32) string {
	return fmt.Sprintf("%g-%g-%g", width, height, depth)
}

func sphereKey(radius float32, ws, hs int) string {
	return fmt.Sprintf("sphere-%g-%d-%d", radius, ws, hs)
}

// GeometryCache hands out one shared Geometry per dimension tuple
type GeometryCache struct {
	geometries map[string]*Geometry
}

func NewGeometryCache() *GeometryCache {
	return &GeometryCache{geometries: make(map[string]*Geometry)}
}

// Box returns the shared box geometry for the given dimensions, creating it on first use
func (gc *GeometryCache) Box(width, height, depth float32) *Geometry {
	key := boxKey(width, height, depth)
	if g, ok := gc.geometries[key]; ok {
		return g
	}
	g := NewBoxGeometry(width, height, depth)
	gc.geometries[key] = g
	logger.Log.Debug("Box geometry created", zap.String("key", key))
	return g
}

// Sphere returns the shared sphere geometry for the given radius and tessellation
func (gc *GeometryCache) Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	key := sphereKey(radius, widthSegments, heightSegments)
	if g, ok := gc.geometries[key]; ok {
		return g
	}
	g := NewSphereGeometry(radius, widthSegments, heightSegments)
	gc.geometries[key] = g
	logger.Log.Debug("Sphere geometry created", zap.String("key", key))
	return g
}

// Len returns how many distinct geometries have been created
func (gc *GeometryCache) Len() int {
	return len(gc.geometries)
}

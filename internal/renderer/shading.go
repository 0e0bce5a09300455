package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadingAlgorithm selects where the reflectance model is evaluated:
// once per vertex with interpolated colors, or once per fragment with interpolated normals.
type ShadingAlgorithm int

const (
	VertexShading ShadingAlgorithm = iota
	FragmentShading
)

func (a ShadingAlgorithm) String() string {
	switch a {
	case VertexShading:
		return "vertex"
	case FragmentShading:
		return "fragment"
	}
	return fmt.Sprintf("ShadingAlgorithm(%d)", int(a))
}

// ParseShadingAlgorithm accepts "vertex"/"gouraud" and "fragment"/"phong"
func ParseShadingAlgorithm(s string) (ShadingAlgorithm, error) {
	switch s {
	case "vertex", "gouraud":
		return VertexShading, nil
	case "fragment", "phong":
		return FragmentShading, nil
	}
	return 0, fmt.Errorf("unknown shading algorithm %q", s)
}

// Toggle returns the other algorithm
func (a ShadingAlgorithm) Toggle() ShadingAlgorithm {
	if a == VertexShading {
		return FragmentShading
	}
	return VertexShading
}

// PointLightUniform is one light slot as seen by a material
type PointLightUniform struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// ShadingInputs is the snapshot of a material's uniforms used for one evaluation
type ShadingInputs struct {
	DiffuseColor    mgl32.Vec3
	Roughness       float32
	Metalness       float32
	Ambient         mgl32.Vec3
	Lights          [MaxLights]PointLightUniform
	NumActiveLights int
}

// Sampler returns the linear RGB color of a texture at uv
type Sampler interface {
	Sample(uv mgl32.Vec2) mgl32.Vec3
}

// Illuminate evaluates ambient + Lambert diffuse + Blinn-Phong specular for a world-space point.
// Lights are summed in slot order and only the first NumActiveLights slots contribute.
// Roughness dampening and clamping happen once, after the sum.
func Illuminate(in *ShadingInputs, point, normal, viewPos mgl32.Vec3) mgl32.Vec3 {
	n := safeNormalize(normal)
	v := safeNormalize(viewPos.Sub(point))

	result := mulComp(in.Ambient, in.DiffuseColor)

	active := in.NumActiveLights
	if active > MaxLights {
		active = MaxLights
	}
	specPow := 32 + 64*in.Metalness
	for i := 0; i < active; i++ {
		light := in.Lights[i]
		radiance := light.Color.Mul(light.Intensity)

		l := safeNormalize(light.Position.Sub(point))
		diffuseFactor := math32.Max(n.Dot(l), 0)
		diffuse := mulComp(radiance.Mul(diffuseFactor), in.DiffuseColor)

		h := safeNormalize(l.Add(v))
		specFactor := math32.Pow(math32.Max(n.Dot(h), 0), specPow)
		specular := radiance.Mul(specFactor * in.Metalness)

		result = result.Add(diffuse).Add(specular)
	}

	r := in.Roughness
	result = mix(result, result.Mul(1-0.5*r), r)
	return clamp01(result)
}

// Shade evaluates the lighting inside triangle tri at barycentric coordinates bary.
// tri must be in world space. tex may be nil when no texture is bound.
func (a ShadingAlgorithm) Shade(in *ShadingInputs, tri [3]SurfacePoint, bary, viewPos mgl32.Vec3, tex Sampler) mgl32.Vec3 {
	s := a.Prepare(in, tri, viewPos, tex)
	return s.At(bary)
}

// TriangleShader evaluates one material across one triangle. Vertex colors are
// computed once in Prepare; At only interpolates or runs the fragment path.
type TriangleShader struct {
	algorithm ShadingAlgorithm
	in        ShadingInputs
	tri       [3]SurfacePoint
	viewPos   mgl32.Vec3
	tex       Sampler
	vertex    [3]mgl32.Vec3
}

// Prepare snapshots the inputs for repeated evaluation over tri
func (a ShadingAlgorithm) Prepare(in *ShadingInputs, tri [3]SurfacePoint, viewPos mgl32.Vec3, tex Sampler) TriangleShader {
	s := TriangleShader{algorithm: a, in: *in, tri: tri, viewPos: viewPos, tex: tex}
	if a == VertexShading {
		for i := range tri {
			s.vertex[i] = Illuminate(&s.in, tri[i].Position, tri[i].Normal, viewPos)
		}
	}
	return s
}

// At returns the shaded color at barycentric coordinates bary
func (s *TriangleShader) At(bary mgl32.Vec3) mgl32.Vec3 {
	tri := s.tri
	var color mgl32.Vec3
	switch s.algorithm {
	case VertexShading:
		color = interpolate3(s.vertex[0], s.vertex[1], s.vertex[2], bary)
	default:
		p := interpolate3(tri[0].Position, tri[1].Position, tri[2].Position, bary)
		n := interpolate3(tri[0].Normal, tri[1].Normal, tri[2].Normal, bary)
		color = Illuminate(&s.in, p, n, s.viewPos)
	}

	if s.tex != nil {
		uv := tri[0].UV.Mul(bary[0]).Add(tri[1].UV.Mul(bary[1])).Add(tri[2].UV.Mul(bary[2]))
		color = mulComp(color, s.tex.Sample(uv))
	}
	return color
}

func interpolate3(a, b, c, bary mgl32.Vec3) mgl32.Vec3 {
	return a.Mul(bary[0]).Add(b.Mul(bary[1])).Add(c.Mul(bary[2]))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func clamp01(v mgl32.Vec3) mgl32.Vec3 {
	for i := range v {
		v[i] = mgl32.Clamp(v[i], 0, 1)
	}
	return v
}

package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Domino3D/internal/layout"
	"Domino3D/internal/logger"
	"Domino3D/internal/renderer"
)

// Dimensions of the box every standard unit shares
type Dimensions struct {
	Width  float32
	Height float32
	Depth  float32
}

// Look is the appearance shared by the whole row
type Look struct {
	BaseColor renderer.Color
	TextureID string
	Shading   renderer.ShadingAlgorithm
	UVMode    renderer.UVMode
}

// SampleOptions places and tessellates the sample sphere
type SampleOptions struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	Position       mgl32.Vec3
}

// Registry tracks the live units and keeps their materials in step with the row look.
// Every mutation resolves all new material handles before touching any unit.
type Registry struct {
	units           []*renderer.Unit
	sample          *renderer.Unit
	sampleVariation int
	sampleOpts      SampleOptions
	look            Look
	dims            Dimensions
	materials       *renderer.MaterialCache
	geometries      *renderer.GeometryCache
	sink            Sink
}

func NewRegistry(materials *renderer.MaterialCache, geometries *renderer.GeometryCache, sink Sink, dims Dimensions, look Look, sample SampleOptions) *Registry {
	if sink == nil {
		sink = NopSink{}
	}
	return &Registry{
		materials:  materials,
		geometries: geometries,
		sink:       sink,
		dims:       dims,
		look:       look,
		sampleOpts: sample,
	}
}

// handle resolves the material for the current look with surface variation v
func (r *Registry) handle(v layout.Variation) (*renderer.MaterialHandle, error) {
	p, err := renderer.NewMaterialParams(r.look.BaseColor, v.Roughness, v.Metalness, r.look.TextureID, r.look.Shading)
	if err != nil {
		return nil, err
	}
	return r.materials.Get(p)
}

// Rebuild destroys every standard unit and creates one per placement
func (r *Registry) Rebuild(placements []layout.Placement) error {
	handles := make([]*renderer.MaterialHandle, len(placements))
	for i, p := range placements {
		h, err := r.handle(p.Variation)
		if err != nil {
			return fmt.Errorf("unit %d: %w", p.Index, err)
		}
		handles[i] = h
	}

	sampleVariation := r.sampleVariation
	if sampleVariation >= len(placements) {
		sampleVariation = len(placements) / 2
	}
	var sampleHandle *renderer.MaterialHandle
	if r.sample != nil {
		h, err := r.handle(layout.VariationAt(sampleVariation, len(placements)))
		if err != nil {
			return fmt.Errorf("sample unit: %w", err)
		}
		sampleHandle = h
	}

	for _, u := range r.units {
		r.sink.RemoveUnit(u)
	}

	geometry := r.geometries.Box(r.dims.Width, r.dims.Height, r.dims.Depth)
	renderer.ProjectUV(geometry, r.look.UVMode)
	units := make([]*renderer.Unit, 0, len(placements))
	for i, p := range placements {
		u := renderer.NewUnit(geometry, handles[i], renderer.StandardUnit)
		u.Index = p.Index
		u.SetPosition(p.X, 0, 0)
		u.SetRotationY(p.RotationY)
		units = append(units, u)
		r.sink.AddUnit(u)
	}
	r.units = units

	r.sampleVariation = sampleVariation
	if r.sample != nil {
		r.sample.SetMaterial(sampleHandle)
	}

	logger.Log.Info("Units rebuilt",
		zap.Int("units", len(r.units)),
		zap.Int("materials", r.materials.Len()))
	return nil
}

// restyle maps every live unit's params through f, all or nothing
func (r *Registry) restyle(f func(renderer.MaterialParams) renderer.MaterialParams) error {
	live := r.liveUnits()
	handles := make([]*renderer.MaterialHandle, len(live))
	for i, u := range live {
		h, err := r.materials.Get(f(u.Material.Params()))
		if err != nil {
			return err
		}
		handles[i] = h
	}
	for i, u := range live {
		u.SetMaterial(handles[i])
	}
	return nil
}

// SetColor changes the base color of every unit
func (r *Registry) SetColor(c renderer.Color) error {
	if err := r.restyle(func(p renderer.MaterialParams) renderer.MaterialParams { return p.WithColor(c) }); err != nil {
		return err
	}
	r.look.BaseColor = c
	logger.Log.Info("Base color changed", zap.String("color", c.Hex()))
	return nil
}

// SetTexture binds the named texture to every unit; an empty name removes it
func (r *Registry) SetTexture(name string) error {
	if err := r.restyle(func(p renderer.MaterialParams) renderer.MaterialParams { return p.WithTexture(name) }); err != nil {
		return err
	}
	r.look.TextureID = name
	logger.Log.Info("Texture changed", zap.String("texture", name))
	return nil
}

// SetShading switches every unit to the algorithm. Previous handles stay cached.
func (r *Registry) SetShading(a renderer.ShadingAlgorithm) error {
	if err := r.restyle(func(p renderer.MaterialParams) renderer.MaterialParams { return p.WithShading(a) }); err != nil {
		return err
	}
	r.look.Shading = a
	logger.Log.Info("Shading changed", zap.String("shading", a.String()))
	return nil
}

// ToggleShading flips between vertex and fragment shading
func (r *Registry) ToggleShading() (renderer.ShadingAlgorithm, error) {
	next := r.look.Shading.Toggle()
	if err := r.SetShading(next); err != nil {
		return r.look.Shading, err
	}
	return next, nil
}

// SetUVMode reprojects the geometry of every live unit
func (r *Registry) SetUVMode(m renderer.UVMode) {
	r.look.UVMode = m
	seen := make(map[*renderer.Geometry]bool)
	for _, u := range r.liveUnits() {
		if seen[u.Geometry] {
			continue
		}
		seen[u.Geometry] = true
		renderer.ProjectUV(u.Geometry, m)
	}
	logger.Log.Info("UV projection changed",
		zap.String("mode", m.String()),
		zap.Int("geometries", len(seen)))
}

// ShowSample adds or removes the sample sphere
func (r *Registry) ShowSample(show bool) error {
	if show == (r.sample != nil) {
		return nil
	}
	if !show {
		r.sink.RemoveUnit(r.sample)
		r.sample = nil
		return nil
	}

	h, err := r.handle(layout.VariationAt(r.sampleVariation, len(r.units)))
	if err != nil {
		return err
	}
	o := r.sampleOpts
	geometry := r.geometries.Sphere(o.Radius, o.WidthSegments, o.HeightSegments)
	renderer.ProjectUV(geometry, r.look.UVMode)
	u := renderer.NewUnit(geometry, h, renderer.SampleUnit)
	u.Index = r.sampleVariation
	u.SetPosition(o.Position.X(), o.Position.Y(), o.Position.Z())
	r.sample = u
	r.sink.AddUnit(u)
	return nil
}

// SetSampleVariation makes the sample copy the surface of unit k. k is clamped to the row.
func (r *Registry) SetSampleVariation(k int) error {
	if k < 0 {
		k = 0
	}
	if n := len(r.units); n > 0 && k > n-1 {
		k = n - 1
	}
	if r.sample != nil {
		h, err := r.handle(layout.VariationAt(k, len(r.units)))
		if err != nil {
			return err
		}
		r.sample.SetMaterial(h)
		r.sample.Index = k
	}
	r.sampleVariation = k
	return nil
}

func (r *Registry) liveUnits() []*renderer.Unit {
	if r.sample == nil {
		return r.units
	}
	return append(append([]*renderer.Unit(nil), r.units...), r.sample)
}

// Units returns a copy of the standard units in row order
func (r *Registry) Units() []*renderer.Unit {
	return append([]*renderer.Unit(nil), r.units...)
}

// Sample returns the sample unit or nil when hidden
func (r *Registry) Sample() *renderer.Unit {
	return r.sample
}

func (r *Registry) SampleVariation() int {
	return r.sampleVariation
}

func (r *Registry) Look() Look {
	return r.look
}

// Len counts every live unit including the sample
func (r *Registry) Len() int {
	return len(r.liveUnits())
}

// Clear removes every unit from the sink
func (r *Registry) Clear() {
	for _, u := range r.liveUnits() {
		r.sink.RemoveUnit(u)
	}
	r.units = nil
	r.sample = nil
}

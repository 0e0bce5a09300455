package renderer

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"Domino3D/internal/logger"
)

// MaterialParams describes one material variant. It is a value: the With* helpers
// return modified copies and never touch shared state.
type MaterialParams struct {
	BaseColor Color
	Roughness float32
	Metalness float32
	TextureID string // empty means no texture
	Shading   ShadingAlgorithm
}

// NewMaterialParams validates and builds a parameter set
func NewMaterialParams(base Color, roughness, metalness float32, textureID string, shading ShadingAlgorithm) (MaterialParams, error) {
	p := MaterialParams{
		BaseColor: base,
		Roughness: roughness,
		Metalness: metalness,
		TextureID: textureID,
		Shading:   shading,
	}
	return p, p.Validate()
}

// Validate checks the ranges of every field
func (p MaterialParams) Validate() error {
	if p.BaseColor > 0xffffff {
		return fmt.Errorf("%w: base color %#x exceeds 24 bits", ErrInvalidMaterialParams, uint32(p.BaseColor))
	}
	if !(p.Roughness >= 0 && p.Roughness <= 1) {
		return fmt.Errorf("%w: roughness %v outside [0,1]", ErrInvalidMaterialParams, p.Roughness)
	}
	if !(p.Metalness >= 0 && p.Metalness <= 1) {
		return fmt.Errorf("%w: metalness %v outside [0,1]", ErrInvalidMaterialParams, p.Metalness)
	}
	if p.Shading != VertexShading && p.Shading != FragmentShading {
		return fmt.Errorf("%w: shading %v", ErrInvalidMaterialParams, p.Shading)
	}
	return nil
}

func (p MaterialParams) WithColor(c Color) MaterialParams {
	p.BaseColor = c
	return p
}

func (p MaterialParams) WithTexture(textureID string) MaterialParams {
	p.TextureID = textureID
	return p
}

func (p MaterialParams) WithShading(a ShadingAlgorithm) MaterialParams {
	p.Shading = a
	return p
}

func (p MaterialParams) WithSurface(roughness, metalness float32) MaterialParams {
	p.Roughness = roughness
	p.Metalness = metalness
	return p
}

// Key returns the canonical cache key of the parameters
func (p MaterialParams) Key() MaterialKey {
	tex := noTexture
	if p.TextureID != "" {
		tex = strconv.Quote(p.TextureID)
	}
	return MaterialKey{
		BaseColor: p.BaseColor,
		Roughness: p.Roughness,
		Metalness: p.Metalness,
		Shading:   p.Shading,
		Texture:   tex,
	}
}

// noTexture marks an absent texture. Named textures are stored quoted, so no name maps to it.
const noTexture = "<none>"

// MaterialKey is the comparable tuple used to deduplicate materials.
// Texture holds either noTexture or the quoted texture name.
type MaterialKey struct {
	BaseColor Color
	Roughness float32
	Metalness float32
	Shading   ShadingAlgorithm
	Texture   string
}

func (k MaterialKey) String() string {
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		k.BaseColor.Hex(),
		strconv.FormatFloat(float64(k.Roughness), 'g', -1, 32),
		strconv.FormatFloat(float64(k.Metalness), 'g', -1, 32),
		k.Shading,
		k.Texture)
}

// MaterialHandle is one shared material: its program binding, texture and live uniforms
type MaterialHandle struct {
	ID       uuid.UUID
	Program  *ShaderProgram
	Texture  *Texture // nil when no texture is bound
	key      MaterialKey
	params   MaterialParams
	uniforms *UniformCache
}

func (h *MaterialHandle) Key() MaterialKey {
	return h.key
}

func (h *MaterialHandle) Params() MaterialParams {
	return h.params
}

// Uniforms exposes the live uniform store
func (h *MaterialHandle) Uniforms() *UniformCache {
	return h.uniforms
}

// Inputs reads the last pushed uniforms into a shading snapshot
func (h *MaterialHandle) Inputs() ShadingInputs {
	var in ShadingInputs
	in.DiffuseColor, _ = h.uniforms.Vec3(uniformDiffuseColor)
	in.Roughness, _ = h.uniforms.Float(uniformRoughness)
	in.Metalness, _ = h.uniforms.Float(uniformMetalness)
	in.Ambient, _ = h.uniforms.Vec3(uniformAmbientColor)
	for i := 0; i < MaxLights; i++ {
		in.Lights[i].Position, _ = h.uniforms.Vec3(pointLightUniform(i, lightPosition))
		in.Lights[i].Color, _ = h.uniforms.Vec3(pointLightUniform(i, lightColor))
		in.Lights[i].Intensity, _ = h.uniforms.Float(pointLightUniform(i, lightIntensity))
	}
	n, _ := h.uniforms.Int(uniformNumActiveLights)
	in.NumActiveLights = int(n)
	return in
}

// Shade evaluates this material on a world-space triangle with the handle's own algorithm
func (h *MaterialHandle) Shade(tri [3]SurfacePoint, bary, viewPos mgl32.Vec3) mgl32.Vec3 {
	s := h.Prepare(tri, viewPos)
	return s.At(bary)
}

// Prepare reads the uniforms once for shading many points of tri
func (h *MaterialHandle) Prepare(tri [3]SurfacePoint, viewPos mgl32.Vec3) TriangleShader {
	in := h.Inputs()
	var tex Sampler
	if h.Texture != nil {
		tex = h.Texture
	}
	return h.params.Shading.Prepare(&in, tri, viewPos, tex)
}

func (h *MaterialHandle) pushLighting(lm *LightingModel) {
	h.uniforms.SetVec3(uniformAmbientColor, lm.Ambient().Color)
	for i := 0; i < MaxLights; i++ {
		var pos, col mgl32.Vec3
		var intensity float32
		if light, ok := lm.Light(i + 1); ok {
			pos, col = light.Position, light.Color
			if light.Visible {
				intensity = light.Intensity
			}
		}
		h.uniforms.SetVec3(pointLightUniform(i, lightPosition), pos)
		h.uniforms.SetVec3(pointLightUniform(i, lightColor), col)
		h.uniforms.SetFloat(pointLightUniform(i, lightIntensity), intensity)
	}
	h.uniforms.SetInt(uniformNumActiveLights, int32(lm.CountActive()))
}

// TextureProvider resolves texture names for materials
type TextureProvider interface {
	GetTexture(name string) (*Texture, error)
}

// MaterialStats provides cache statistics
type MaterialStats struct {
	Materials   int
	CacheHits   int
	CacheMisses int
	Refreshes   int
}

// MaterialCache owns every MaterialHandle, one per distinct MaterialKey.
// Handles are never evicted.
type MaterialCache struct {
	handles  map[MaterialKey]*MaterialHandle
	order    []*MaterialHandle
	textures TextureProvider
	programs *ProgramLibrary
	lighting *LightingModel
	stats    MaterialStats
}

// NewMaterialCache creates a cache whose new handles start from the given lighting state
func NewMaterialCache(textures TextureProvider, programs *ProgramLibrary, lighting *LightingModel) *MaterialCache {
	if programs == nil {
		programs = NewProgramLibrary()
	}
	return &MaterialCache{
		handles:  make(map[MaterialKey]*MaterialHandle),
		textures: textures,
		programs: programs,
		lighting: lighting,
	}
}

// Get returns the handle for params, creating it on first request.
// Invalid params or an unknown texture leave the cache untouched.
func (mc *MaterialCache) Get(params MaterialParams) (*MaterialHandle, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key := params.Key()
	if h, ok := mc.handles[key]; ok {
		mc.stats.CacheHits++
		return h, nil
	}

	var tex *Texture
	if params.TextureID != "" {
		t, err := mc.textures.GetTexture(params.TextureID)
		if err != nil {
			return nil, err
		}
		tex = t
	}

	h := &MaterialHandle{
		ID:       uuid.New(),
		Program:  mc.programs.Program(params.Shading, tex != nil),
		Texture:  tex,
		key:      key,
		params:   params,
		uniforms: NewUniformCache(),
	}
	h.uniforms.SetVec3(uniformDiffuseColor, params.BaseColor.Vec3())
	h.uniforms.SetFloat(uniformRoughness, params.Roughness)
	h.uniforms.SetFloat(uniformMetalness, params.Metalness)
	var hasTexture int32
	if tex != nil {
		hasTexture = 1
	}
	h.uniforms.SetInt(uniformHasTexture, hasTexture)
	if mc.lighting != nil {
		h.pushLighting(mc.lighting)
	}

	mc.handles[key] = h
	mc.order = append(mc.order, h)
	mc.stats.CacheMisses++
	mc.stats.Materials++

	logger.Log.Debug("Material created",
		zap.String("key", key.String()),
		zap.String("id", h.ID.String()),
		zap.Uint32("programID", h.Program.ID))
	return h, nil
}

// RefreshAll pushes the current lighting state into every cached handle.
// Call it once per frame after all mutations of that frame.
func (mc *MaterialCache) RefreshAll(lm *LightingModel) {
	for _, h := range mc.order {
		h.pushLighting(lm)
	}
	mc.stats.Refreshes++
}

// Len returns the number of cached handles
func (mc *MaterialCache) Len() int {
	return len(mc.order)
}

// Programs returns the program library backing the cache
func (mc *MaterialCache) Programs() *ProgramLibrary {
	return mc.programs
}

func (mc *MaterialCache) GetStats() MaterialStats {
	return mc.stats
}

// LogStats logs current material cache statistics
func (mc *MaterialCache) LogStats() {
	stats := mc.GetStats()
	logger.Log.Info("Material Cache Stats",
		zap.Int("materials", stats.Materials),
		zap.Int("programs", mc.programs.Len()),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Int("refreshes", stats.Refreshes))
}

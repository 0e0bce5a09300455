package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by both shading programs
const (
	uniformDiffuseColor    = "diffuseColor"
	uniformRoughness       = "roughness"
	uniformMetalness       = "metalness"
	uniformAmbientColor    = "ambientLightColor"
	uniformNumActiveLights = "numActiveLights"
	uniformHasTexture      = "hasTexture"
)

// Fields of one pointLights[] entry
const (
	lightPosition = iota
	lightColor
	lightIntensity
)

var lightFields = [...]string{"position", "color", "intensity"}

// pointLightUniforms is indexed [slot][field] and built once
var pointLightUniforms = func() (names [MaxLights][len(lightFields)]string) {
	for slot := range names {
		for field, name := range lightFields {
			names[slot][field] = fmt.Sprintf("pointLights[%d].%s", slot, name)
		}
	}
	return names
}()

func pointLightUniform(slot, field int) string {
	return pointLightUniforms[slot][field]
}

// UniformCache holds the live uniform values of one material, keyed by uniform name.
// Values change only when written, so readers always see the last pushed state.
type UniformCache struct {
	floats  map[string]float32
	vec3s   map[string]mgl32.Vec3
	ints    map[string]int32
	version uint64
}

// NewUniformCache creates an empty uniform store
func NewUniformCache() *UniformCache {
	return &UniformCache{
		floats: make(map[string]float32),
		vec3s:  make(map[string]mgl32.Vec3),
		ints:   make(map[string]int32),
	}
}

// SetFloat stores a float uniform
func (uc *UniformCache) SetFloat(name string, value float32) {
	uc.floats[name] = value
	uc.version++
}

// SetVec3 stores a vec3 uniform
func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	uc.vec3s[name] = value
	uc.version++
}

// SetInt stores an int uniform
func (uc *UniformCache) SetInt(name string, value int32) {
	uc.ints[name] = value
	uc.version++
}

func (uc *UniformCache) Float(name string) (float32, bool) {
	v, ok := uc.floats[name]
	return v, ok
}

func (uc *UniformCache) Vec3(name string) (mgl32.Vec3, bool) {
	v, ok := uc.vec3s[name]
	return v, ok
}

func (uc *UniformCache) Int(name string) (int32, bool) {
	v, ok := uc.ints[name]
	return v, ok
}

// Version increases on every write
func (uc *UniformCache) Version() uint64 {
	return uc.version
}

// Len returns the number of stored uniforms
func (uc *UniformCache) Len() int {
	return len(uc.floats) + len(uc.vec3s) + len(uc.ints)
}

// Clear drops every stored value
func (uc *UniformCache) Clear() {
	uc.floats = make(map[string]float32)
	uc.vec3s = make(map[string]mgl32.Vec3)
	uc.ints = make(map[string]int32)
	uc.version++
}

package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache()

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, uint64(0), cache.Version())
}

func TestUniformCacheSetAndGet(t *testing.T) {
	cache := NewUniformCache()
	cache.SetFloat(uniformRoughness, 0.25)
	cache.SetVec3(uniformAmbientColor, mgl32.Vec3{1, 2, 3})
	cache.SetInt(uniformNumActiveLights, 2)

	f, ok := cache.Float(uniformRoughness)
	assert.True(t, ok)
	assert.Equal(t, float32(0.25), f)

	v, ok := cache.Vec3(uniformAmbientColor)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v)

	n, ok := cache.Int(uniformNumActiveLights)
	assert.True(t, ok)
	assert.Equal(t, int32(2), n)

	_, ok = cache.Float("nonexistent")
	assert.False(t, ok, "Non-existent key should not be in cache")
	assert.Equal(t, uint64(3), cache.Version())
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache()
	cache.SetFloat("test", 5)

	cache.Clear()

	if cache.Len() != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestPointLightUniformName(t *testing.T) {
	assert.Equal(t, "pointLights[2].intensity", pointLightUniform(2, lightIntensity))
}

func TestPointLightUniformTable(t *testing.T) {
	seen := make(map[string]bool)
	for slot := 0; slot < MaxLights; slot++ {
		for field := lightPosition; field <= lightIntensity; field++ {
			name := pointLightUniform(slot, field)
			if name == "" {
				t.Fatalf("Expected a name for slot %d field %d", slot, field)
			}
			if seen[name] {
				t.Errorf("Expected unique uniform names, got %s twice", name)
			}
			seen[name] = true
		}
	}
	if pointLightUniform(0, lightPosition) != "pointLights[0].position" {
		t.Errorf("Expected pointLights[0].position, got %s", pointLightUniform(0, lightPosition))
	}
	if len(seen) != MaxLights*3 {
		t.Errorf("Expected %d names, got %d", MaxLights*3, len(seen))
	}
}

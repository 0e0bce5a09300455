package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramLibraryOneProgramPerVariant(t *testing.T) {
	pl := NewProgramLibrary()

	a := pl.Program(FragmentShading, false)
	b := pl.Program(FragmentShading, false)
	assert.Same(t, a, b)

	ids := map[uint32]bool{}
	for _, alg := range []ShadingAlgorithm{VertexShading, FragmentShading} {
		for _, textured := range []bool{false, true} {
			ids[pl.Program(alg, textured).ID] = true
		}
	}
	assert.Len(t, ids, 4)
	assert.Equal(t, 4, pl.Len())
}

func TestProgramSourcesFollowAlgorithm(t *testing.T) {
	pl := NewProgramLibrary()

	gouraud := pl.Program(VertexShading, false)
	assert.Contains(t, gouraud.VertexSource, "illuminate(")
	assert.NotContains(t, gouraud.FragmentSource, "illuminate(")
	assert.NotContains(t, gouraud.FragmentSource, "#define USE_TEXTURE")

	phong := pl.Program(FragmentShading, true)
	assert.Contains(t, phong.FragmentSource, "illuminate(")
	assert.Contains(t, phong.FragmentSource, "#define USE_TEXTURE")
	assert.True(t, strings.HasSuffix(phong.VertexSource, "\x00"))
}

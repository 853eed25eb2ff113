package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramsEmbedded(t *testing.T) {
	assert.Equal(t, []string{"heightmap", "simple2d", "simple3d"}, Names())
	for name, src := range Programs {
		assert.NotEmpty(t, src, name)
		assert.True(t, strings.Contains(src, "fn vs_main"), "%s has a vertex entry point", name)
		assert.True(t, strings.Contains(src, "fn fs_main"), "%s has a fragment entry point", name)
		assert.True(t, strings.Contains(src, "@group(0) @binding(0)"), "%s binds the item uniforms", name)
	}
}

func TestIsOverlay(t *testing.T) {
	assert.True(t, IsOverlay("simple2d"))
	assert.False(t, IsOverlay("simple3d"))
	assert.False(t, IsOverlay("heightmap"))
}

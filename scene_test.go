package painter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
items:
  - class: OrthoLineGrid
    label: ground
    params:
      lower_left: [0, 0]
      upper_right: [100, 100]
      unit: 10
  - class: Text
    label: hud
    scale: 0.01
    origin: [-0.95, -0.95, 0]
    placement: overlay
    params:
      text: hello
  - class: Star
    label: star
    origin: [60, 60, 60]
    scale: 4
    rotation: {axis: [0, 0, 1], angle: 45}
    line_width: 2
  - class: Item
    label: quad
    placement: billboard:z
    filled: true
    params:
      primitive: triangle_strip
      vertices:
        - {pos: [0, 0, 0], color: [0.7, 0.2, 0.7, 1]}
        - {pos: [0, 50, 0], color: [0.7, 0.2, 0.7, 1]}
        - {pos: [50, 0, 0], color: [0.7, 0.2, 0.7, 1]}
        - {pos: [50, 50, 0], color: [0.7, 0.2, 0.7, 1]}
  - class: HeightMap
    label: hat
    params: {nodes_x: 2, nodes_y: 2, heights: [0, 1, 2, 3]}
`

func TestLoadScene(t *testing.T) {
	p := newTestPainter(t)
	scene, err := ParseScene([]byte(testScene))
	require.NoError(t, err)

	n, err := LoadScene(p, scene)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var labels []string
	for it := range p.Items() {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"ground", "hud", "star", "quad", "hat"}, labels)

	ground, _ := p.Item("ground")
	assert.Len(t, ground.Geometry.Vertices, 2*11+2*11)
	assert.Equal(t, Shader3D, ground.Shader)

	hud, _ := p.Item("hud")
	assert.Equal(t, core.Overlay(), hud.Placement)
	assert.Equal(t, Shader2D, hud.Shader)
	assert.NotEmpty(t, hud.Geometry.Vertices)

	star, _ := p.Item("star")
	assert.Equal(t, mgl32.Vec3{60, 60, 60}, star.Transform.Origin)
	assert.Equal(t, float32(2), star.LineWidth)
	assert.InDelta(t, 1, star.Transform.Rotation.Len(), 1e-6)

	quad, _ := p.Item("quad")
	assert.Equal(t, core.BillboardAxis(core.AxisZ), quad.Placement)
	assert.Equal(t, core.TriangleStrip, quad.Geometry.Primitive)
	assert.True(t, quad.Filled)
	assert.Equal(t, [3]float32{50, 50, 0}, quad.Geometry.Vertices[3].Pos)

	hat, _ := p.Item("hat")
	assert.Equal(t, ShaderHeightMap, hat.Shader)
	assert.Equal(t, float32(3), hat.Uniforms["height_max"])
}

func TestLoadSceneReportsBadItems(t *testing.T) {
	p := newTestPainter(t)
	scene, err := ParseScene([]byte(`
items:
  - {class: Star, label: ok}
  - {class: Teapot, label: pot}
  - {class: Star, label: ok}
  - {class: Circle, label: c, params: {radius: nope}}
  - {class: Star}
`))
	require.NoError(t, err)

	n, err := LoadScene(p, scene)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, geom.ErrUnknownClass)
	assert.ErrorIs(t, err, core.ErrDuplicateLabel)
	assert.ErrorIs(t, err, geom.ErrInvalidParams)
}

func TestParseSceneBadPlacement(t *testing.T) {
	_, err := ParseScene([]byte("items:\n  - {class: Star, label: s, placement: sideways}\n"))
	assert.ErrorIs(t, err, core.ErrInvalidPlacementMode)
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0o644))

	p := newTestPainter(t)
	n, err := LoadSceneFile(p, path)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

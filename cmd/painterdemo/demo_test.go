package main

import (
	"testing"

	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullSink struct{ drawn []string }

func (nullSink) HasShader(string) bool { return true }

func (s *nullSink) Draw(cmd painter.DrawCommand) error {
	s.drawn = append(s.drawn, cmd.Label)
	return nil
}

func newDemoPainter(t *testing.T) *painter.Painter {
	t.Helper()
	cfg, err := loadConfig("", false)
	require.NoError(t, err)
	p, err := painter.New(cfg)
	require.NoError(t, err)
	return p
}

func TestBuildDemo(t *testing.T) {
	p := newDemoPainter(t)
	require.NoError(t, buildDemo(p))

	for _, label := range []string{"grid", "cs_world", "cs_offset", "text_overlay", "arc_helix", "heightmap", "overlay_triangle"} {
		_, ok := p.Item(label)
		assert.True(t, ok, label)
	}

	cs, _ := p.Item("cs_offset")
	assert.Equal(t, [4]float32{1, 1, 1, 1}, cs.Geometry.Vertices[0].Color)

	hm, _ := p.Item("heightmap")
	assert.Equal(t, painter.ShaderHeightMap, hm.Shader)
	assert.Less(t, hm.Uniforms["height_min"], float32(0))
	assert.InDelta(t, 40, hm.Uniforms["height_max"], 5)

	hud, _ := p.Item("text_overlay")
	assert.Equal(t, core.PlacementOverlay, hud.Placement.Mode)

	sink := &nullSink{}
	stats := p.Render(sink)
	require.NoError(t, stats.Err())
	assert.Equal(t, p.ItemCount(), stats.Drawn)
	assert.Equal(t, "grid", sink.drawn[0])
}

func TestBuildDemoTwiceFails(t *testing.T) {
	p := newDemoPainter(t)
	require.NoError(t, buildDemo(p))
	n := p.ItemCount()

	err := buildDemo(p)
	assert.ErrorIs(t, err, core.ErrDuplicateLabel)
	assert.Equal(t, n, p.ItemCount())
}

func TestExampleScene(t *testing.T) {
	p := newDemoPainter(t)
	n, err := painter.LoadSceneFile(p, "example.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	caption, ok := p.Item("caption")
	require.True(t, ok)
	assert.Equal(t, core.BillboardAxis(core.AxisZ), caption.Placement)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", true)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, [3]float32{150, 150, 350}, cfg.Camera.Position)

	_, err = loadConfig("does-not-exist.yaml", false)
	assert.Error(t, err)
}

func TestDemoNavigationScale(t *testing.T) {
	p := newDemoPainter(t)
	cam := p.Camera()
	start := cam.Position
	assert.Equal(t, float32(350), cam.LookDistance)

	p.Wheel(-1)
	assert.GreaterOrEqual(t, start.Sub(cam.Position).Len(), float32(0.01*350),
		"one wheel step covers a visible share of the scene")

	p.ResetView()
	p.PointerDown(core.ButtonMiddle, 0, 0)
	require.NoError(t, p.PointerMove(1000, 0))
	p.PointerUp(core.ButtonMiddle)
	assert.GreaterOrEqual(t, start.Sub(cam.Position).Len(), float32(100))

	p.ResetView()
	p.PointerDown(core.ButtonRight, 0, 0)
	require.NoError(t, p.PointerMove(0, -100))
	p.PointerUp(core.ButtonRight)
	assert.GreaterOrEqual(t, start.Sub(cam.Position).Len(), float32(100))
}

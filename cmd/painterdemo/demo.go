package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// defaults returns the default parameters of class, ready to be tweaked.
func defaults[P any](p *painter.Painter, class string) *P {
	v, err := p.Classes().NewParams(class)
	if err != nil {
		panic(err)
	}
	return v.(*P)
}

// buildDemo fills p with the example scene: a ground grid, coordinate
// systems, a star cloud, arcs, circles, raw primitives, billboards, an
// overlay and a height map.
func buildDemo(p *painter.Painter) error {
	var errs []error
	create := func(class, label, shader string, scale float32, origin mgl32.Vec3, params any, opts ...painter.ItemOption) {
		if _, err := p.ItemCreate(class, label, shader, scale, origin, params, opts...); err != nil {
			errs = append(errs, err)
		}
	}
	s3d := painter.Shader3D

	grid := defaults[geom.OrthoLineGridParams](p, "OrthoLineGrid")
	grid.LowerLeft = [2]float32{-500, -500}
	grid.UpperRight = [2]float32{500, 500}
	grid.Unit = 10
	create("OrthoLineGrid", "grid", s3d, 1, mgl32.Vec3{}, grid)

	create("CoordSystem", "cs_world", s3d, 30, mgl32.Vec3{}, nil, painter.WithLineWidth(2))
	create("CoordSystem", "cs_offset", s3d, 10, mgl32.Vec3{100, 50, 0}, nil,
		painter.WithRotation(mgl32.Vec3{0, 0, 1}, 30))
	if _, err := p.ItemUpdate("cs_offset", func(it *core.Item) error {
		geom.HighlightCoordSystem(it, true)
		return nil
	}); err != nil {
		errs = append(errs, err)
	}

	label := defaults[geom.TextParams](p, "Text")
	label.Text = "pyramid"
	label.Size = 15
	create("Text", "text_world", s3d, 1, mgl32.Vec3{-60, 60, 0}, label)

	bb := defaults[geom.TextParams](p, "Text")
	bb.Text = "billboard"
	bb.Size = 15
	bb.Color = [4]float32{1, 1, 0, 1}
	create("Text", "text_billboard", s3d, 1, mgl32.Vec3{0, 0, 60}, bb,
		painter.WithPlacement(core.Billboard()))

	axis := defaults[geom.TextParams](p, "Text")
	axis.Text = "axis billboard"
	axis.Size = 10
	axis.Color = [4]float32{0, 1, 1, 1}
	create("Text", "text_axis_billboard", s3d, 1, mgl32.Vec3{80, 0, 30}, axis,
		painter.WithPlacement(core.BillboardAxis(core.AxisZ)))

	hud := defaults[geom.TextParams](p, "Text")
	hud.Text = "LMB rotate  MMB pan  RMB/wheel dolly  R reset"
	hud.Size = 1
	create("Text", "text_overlay", painter.Shader2D, 0.04, mgl32.Vec3{-0.95, -0.95, 0}, hud,
		painter.WithPlacement(core.Overlay()))

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 50 {
		origin := mgl32.Vec3{
			rng.Float32()*400 - 200,
			rng.Float32()*400 - 200,
			rng.Float32() * 200,
		}
		create("Star", fmt.Sprintf("star_%d", i), s3d, 2+rng.Float32()*4, origin, nil)
	}

	helix := defaults[geom.ArcParams](p, "Arc")
	helix.Start = [3]float32{50, 0, 0}
	helix.End = [3]float32{50, 0, 100}
	helix.Offset = [3]float32{-50, 0, 0}
	helix.Radius = 50
	helix.Color = [4]float32{1, 0.5, 0, 1}
	create("Arc", "arc_helix", s3d, 1, mgl32.Vec3{-150, 150, 0}, helix)

	wedge := defaults[geom.ArcParams](p, "Arc")
	wedge.Start = [3]float32{40, 0, 0}
	wedge.End = [3]float32{0, 40, 0}
	wedge.Offset = [3]float32{-40, 0, 0}
	wedge.Radius = 40
	wedge.Triangles = true
	wedge.Filled = true
	wedge.Color = [4]float32{0.2, 0.6, 1, 0.6}
	create("Arc", "arc_wedge", s3d, 1, mgl32.Vec3{150, -150, 0}, wedge)

	cw := *wedge
	cw.Clockwise = true
	cw.Triangles = false
	cw.Color = [4]float32{1, 1, 1, 1}
	create("Arc", "arc_clockwise", s3d, 1, mgl32.Vec3{150, -150, 1}, &cw)

	for i := range 3 {
		c := defaults[geom.CircleParams](p, "Circle")
		c.Radius = float32(20 * (i + 1))
		c.Color = [4]float32{0, 1, float32(i) / 2, 1}
		create("Circle", fmt.Sprintf("circle_%d", i), s3d, 1, mgl32.Vec3{-150, -150, float32(10 * i)}, c)
	}
	disc := defaults[geom.CircleParams](p, "Circle")
	disc.Radius = 15
	disc.Triangles = true
	disc.Filled = true
	disc.Color = [4]float32{1, 0, 0, 0.5}
	create("Circle", "circle_disc", s3d, 1, mgl32.Vec3{-150, -150, 40}, disc,
		painter.WithRotation(mgl32.Vec3{1, 0, 0}, 90))

	create("Item", "pyramid", s3d, 30, mgl32.Vec3{-60, 60, 0}, geom.RawParams{
		Primitive: core.Triangles,
		Vertices:  pyramid(),
		Filled:    true,
	})
	create("Item", "billboard_quad", s3d, 10, mgl32.Vec3{0, 100, 50}, geom.RawParams{
		Primitive: core.TriangleStrip,
		Vertices: []core.Vertex{
			{Pos: [3]float32{-1, -1, 0}, Color: [4]float32{1, 0, 1, 0.8}},
			{Pos: [3]float32{1, -1, 0}, Color: [4]float32{1, 0, 1, 0.8}},
			{Pos: [3]float32{-1, 1, 0}, Color: [4]float32{1, 1, 1, 0.8}},
			{Pos: [3]float32{1, 1, 0}, Color: [4]float32{1, 1, 1, 0.8}},
		},
		Filled: true,
	}, painter.WithPlacement(core.Billboard()))
	create("Item", "overlay_triangle", painter.Shader2D, 0.1, mgl32.Vec3{0.85, 0.85, 0}, geom.RawParams{
		Primitive: core.Triangles,
		Vertices: []core.Vertex{
			{Pos: [3]float32{-1, -1, 0}, Color: [4]float32{1, 0, 0, 1}},
			{Pos: [3]float32{1, -1, 0}, Color: [4]float32{0, 1, 0, 1}},
			{Pos: [3]float32{0, 1, 0}, Color: [4]float32{0, 0, 1, 1}},
		},
		Filled: true,
	}, painter.WithPlacement(core.Overlay()))

	create("HeightMap", "heightmap", painter.ShaderHeightMap, 1, mgl32.Vec3{100, 100, 0}, mexicanHat(30, 10, 5))

	return errors.Join(errs...)
}

// pyramid is a square based pyramid of unit height with colored sides.
func pyramid() []core.Vertex {
	apex := [3]float32{0, 0, 1}
	base := [4][3]float32{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0}}
	colors := [4][4]float32{{1, 0, 0, 0.7}, {0, 1, 0, 0.7}, {0, 0, 1, 0.7}, {1, 1, 0, 0.7}}
	var v []core.Vertex
	for i := range base {
		c := colors[i]
		v = append(v,
			core.Vertex{Pos: base[i], Color: c},
			core.Vertex{Pos: base[(i+1)%4], Color: c},
			core.Vertex{Pos: apex, Color: c})
	}
	return v
}

// mexicanHat samples a ricker wavelet on an nx by ny grid.
func mexicanHat(nx, ny int, spacing float32) *geom.HeightMapParams {
	heights := make([]float32, 0, nx*ny)
	cx, cy := float32(nx-1)/2, float32(ny-1)/2
	for y := range ny {
		for x := range nx {
			dx, dy := (float32(x)-cx)/4, (float32(y)-cy)/4
			r2 := dx*dx + dy*dy
			heights = append(heights, 40*(1-r2)*math32.Exp(-r2/2))
		}
	}
	return &geom.HeightMapParams{
		NodesX:  nx,
		NodesY:  ny,
		Spacing: spacing,
		Heights: heights,
		Filled:  true,
		Color:   [4]float32{1, 1, 1, 1},
	}
}

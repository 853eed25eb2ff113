package geom

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/painter/core"
)

// RawParams describes an item built from caller supplied vertices.
type RawParams struct {
	Primitive core.Primitive `yaml:"primitive"`
	Vertices  []core.Vertex  `yaml:"vertices"`
	Indices   []uint32       `yaml:"indices"`
	Filled    bool           `yaml:"filled"`
}

func RawClass() Class {
	return Define("Item", func() RawParams { return RawParams{Primitive: core.Lines} }, buildRaw)
}

func buildRaw(p RawParams) (Shape, error) {
	if p.Primitive < core.Points || p.Primitive > core.TriangleFan {
		return Shape{}, invalid("primitive %v", p.Primitive)
	}
	for _, i := range p.Indices {
		if int(i) >= len(p.Vertices) {
			return Shape{}, invalid("index %d out of range for %d vertices", i, len(p.Vertices))
		}
	}
	geo := core.Geometry{
		Primitive: p.Primitive,
		Vertices:  append([]core.Vertex(nil), p.Vertices...),
		Indices:   append([]uint32(nil), p.Indices...),
	}
	return Shape{Geometry: geo, Filled: p.Filled}, nil
}

type StarParams struct {
	Color [4]float32 `yaml:"color"`
}

// StarClass draws a three-axis cross. Viewed off-axis it reads as a star.
func StarClass() Class {
	return Define("Star", func() StarParams { return StarParams{Color: [4]float32{1, 1, .5, 1}} }, buildStar)
}

func buildStar(p StarParams) (Shape, error) {
	c := p.Color
	return Shape{Geometry: core.Geometry{
		Primitive: core.Lines,
		Vertices: []core.Vertex{
			vtx(-.5, 0, 0, c), vtx(1, 0, 0, c),
			vtx(0, -.5, 0, c), vtx(0, .5, 0, c),
			vtx(0, 0, -.5, c), vtx(0, 0, .5, c),
		},
	}}, nil
}

type CoordSystemParams struct {
	Highlight bool `yaml:"highlight"`
}

var (
	axisColorX = [4]float32{.6, 0, 0, 1}
	axisColorY = [4]float32{0, .6, 0, 1}
	axisColorZ = [4]float32{0, 0, .6, 1}

	highlightColor = [4]float32{1, 1, 1, 1}
)

// CoordSystemClass draws unit X, Y and Z axes in red, green and blue.
func CoordSystemClass() Class {
	return Define("CoordSystem", func() CoordSystemParams { return CoordSystemParams{} }, buildCoordSystem)
}

func buildCoordSystem(p CoordSystemParams) (Shape, error) {
	geo := core.Geometry{
		Primitive: core.Lines,
		Vertices: []core.Vertex{
			vtx(0, 0, 0, axisColorX), vtx(1, 0, 0, axisColorX),
			vtx(0, 0, 0, axisColorY), vtx(0, 1, 0, axisColorY),
			vtx(0, 0, 0, axisColorZ), vtx(0, 0, 1, axisColorZ),
		},
	}
	if p.Highlight {
		for _, i := range coordSystemOrigins {
			geo.Vertices[i].Color = highlightColor
		}
	}
	return Shape{Geometry: geo}, nil
}

var coordSystemOrigins = []int{0, 2, 4}

// HighlightCoordSystem fades the axes of a CoordSystem item towards white
// at the origin, or restores the plain axis colors.
func HighlightCoordSystem(it *core.Item, on bool) {
	if !on {
		it.SetColor(axisColorX, 0)
		it.SetColor(axisColorY, 2)
		it.SetColor(axisColorZ, 4)
		return
	}
	it.SetColor(highlightColor, coordSystemOrigins...)
}

type GridParams struct {
	Size      float32    `yaml:"size"`
	Divisions int        `yaml:"divisions"`
	Color     [4]float32 `yaml:"color"`
}

// GridClass draws a square grid in the XY plane centered on the origin.
func GridClass() Class {
	return Define("Grid", func() GridParams {
		return GridParams{Size: 1, Divisions: 10, Color: [4]float32{1, 1, 1, 0.2}}
	}, buildGrid)
}

func buildGrid(p GridParams) (Shape, error) {
	if p.Size <= 0 || p.Divisions < 1 {
		return Shape{}, invalid("grid size %v divisions %d", p.Size, p.Divisions)
	}
	half := p.Size / 2
	step := p.Size / float32(p.Divisions)
	verts := make([]core.Vertex, 0, 4*(p.Divisions+1))
	for i := 0; i <= p.Divisions; i++ {
		d := -half + float32(i)*step
		verts = append(verts,
			vtx(d, -half, 0, p.Color), vtx(d, half, 0, p.Color),
			vtx(-half, d, 0, p.Color), vtx(half, d, 0, p.Color),
		)
	}
	return Shape{Geometry: core.Geometry{Primitive: core.Lines, Vertices: verts}}, nil
}

type OrthoLineGridParams struct {
	LowerLeft  [2]float32 `yaml:"lower_left"`
	UpperRight [2]float32 `yaml:"upper_right"`
	Unit       float32    `yaml:"unit"`
	Color      [4]float32 `yaml:"color"`
}

// OrthoLineGridClass draws axis-aligned lines every Unit across a
// rectangle in the XY plane. Useful as a ground plane.
func OrthoLineGridClass() Class {
	return Define("OrthoLineGrid", func() OrthoLineGridParams {
		return OrthoLineGridParams{UpperRight: [2]float32{10, 10}, Unit: 1, Color: [4]float32{1, 1, 1, 0.2}}
	}, buildOrthoLineGrid)
}

func buildOrthoLineGrid(p OrthoLineGridParams) (Shape, error) {
	width := p.UpperRight[0] - p.LowerLeft[0]
	height := p.UpperRight[1] - p.LowerLeft[1]
	if p.Unit <= 0 || width < 0 || height < 0 {
		return Shape{}, invalid("ortho grid %v..%v unit %v", p.LowerLeft, p.UpperRight, p.Unit)
	}
	cols := int(math32.Floor(width/p.Unit)) + 1
	rows := int(math32.Floor(height/p.Unit)) + 1
	x0, y0 := p.LowerLeft[0], p.LowerLeft[1]

	verts := make([]core.Vertex, 0, 2*cols+2*rows)
	for i := 0; i < cols; i++ {
		x := x0 + p.Unit*float32(i)
		verts = append(verts, vtx(x, y0, 0, p.Color), vtx(x, y0+height, 0, p.Color))
	}
	for i := 0; i < rows; i++ {
		y := y0 + p.Unit*float32(i)
		verts = append(verts, vtx(x0, y, 0, p.Color), vtx(x0+width, y, 0, p.Color))
	}
	return Shape{Geometry: core.Geometry{Primitive: core.Lines, Vertices: verts}}, nil
}

package geom

import (
	"github.com/gekko3d/painter/core"
)

// HeightMapParams is a regular NodesX by NodesY grid of heights. Node
// (x, y) sits at (x*Spacing, y*Spacing, Heights[y*NodesX+x]).
type HeightMapParams struct {
	NodesX  int        `yaml:"nodes_x"`
	NodesY  int        `yaml:"nodes_y"`
	Spacing float32    `yaml:"spacing"`
	Heights []float32  `yaml:"heights"`
	Filled  bool       `yaml:"filled"`
	Color   [4]float32 `yaml:"color"`
}

// HeightMapClass renders a surface as a single triangle strip. The
// heightmap shader colors it by height using the height_min and
// height_max uniforms.
func HeightMapClass() Class {
	return Define("HeightMap", func() HeightMapParams {
		return HeightMapParams{Spacing: 1, Filled: true, Color: [4]float32{1, 1, 1, 1}}
	}, buildHeightMap)
}

func buildHeightMap(p HeightMapParams) (Shape, error) {
	if p.NodesX < 2 || p.NodesY < 2 {
		return Shape{}, invalid("height map needs at least 2x2 nodes, got %dx%d", p.NodesX, p.NodesY)
	}
	if len(p.Heights) != p.NodesX*p.NodesY {
		return Shape{}, invalid("height map %dx%d needs %d heights, got %d",
			p.NodesX, p.NodesY, p.NodesX*p.NodesY, len(p.Heights))
	}
	if p.Spacing <= 0 {
		p.Spacing = 1
	}

	verts := make([]core.Vertex, len(p.Heights))
	lo, hi := p.Heights[0], p.Heights[0]
	for i, h := range p.Heights {
		x, y := i%p.NodesX, i/p.NodesX
		verts[i] = vtx(float32(x)*p.Spacing, float32(y)*p.Spacing, h, p.Color)
		lo, hi = min(lo, h), max(hi, h)
	}

	return Shape{
		Geometry: core.Geometry{
			Primitive: core.TriangleStrip,
			Vertices:  verts,
			Indices:   StripIndices(p.NodesX, p.NodesY),
		},
		Filled: p.Filled,
		Uniforms: map[string]float32{
			"height_min": lo,
			"height_max": hi,
		},
	}, nil
}

// StripIndices walks an nx by ny grid as one triangle strip, snaking left
// to right on even rows and back on odd rows. Each row ends with a repeated
// index so the turn produces only degenerate triangles.
func StripIndices(nx, ny int) []uint32 {
	if nx < 2 || ny < 2 {
		return nil
	}
	idx := make([]uint32, 1, 1+2*(nx-1)*(ny-1)+2*(ny-1))
	idx[0] = 0
	dir := 1
	for y := 0; y < ny-1; y++ {
		if dir == 1 {
			for x := 0; x < nx-1; x++ {
				idx = append(idx, uint32((y+1)*nx+x), uint32(y*nx+x+1))
			}
			end := uint32((y+2)*nx - 1)
			idx = append(idx, end, end)
		} else {
			for x := nx - 1; x > 0; x-- {
				idx = append(idx, uint32((y+1)*nx+x), uint32(y*nx+x-1))
			}
			end := uint32((y + 1) * nx)
			idx = append(idx, end, end)
		}
		dir = -dir
	}
	return idx
}

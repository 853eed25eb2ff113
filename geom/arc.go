package geom

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/painter/core"
)

const (
	// arcTolerance is the maximum distance between the true arc and the
	// chord approximating it, in local units.
	arcTolerance = 0.004
	// arcTravelEpsilon decides when start and end coincide, i.e. when the
	// arc is a full circle.
	arcTravelEpsilon = 5e-7
)

// ArcParams describes a circular arc in the XY plane. Start, End and the
// center Offset (relative to Start) over-define the arc; the caller keeps
// them consistent. A difference in Z between Start and End produces a
// helix. Radius only controls the number of segments.
type ArcParams struct {
	Start     [3]float32 `yaml:"start"`
	End       [3]float32 `yaml:"end"`
	Offset    [3]float32 `yaml:"offset"`
	Radius    float32    `yaml:"radius"`
	Clockwise bool       `yaml:"clockwise"`
	// Triangles draws a wedge fanning out from the center instead of a
	// line strip.
	Triangles bool       `yaml:"triangles"`
	Filled    bool       `yaml:"filled"`
	Color     [4]float32 `yaml:"color"`
}

func ArcClass() Class {
	return Define("Arc", func() ArcParams {
		return ArcParams{
			Start:     [3]float32{-1, 0, 0},
			End:       [3]float32{-1, 0, 0},
			Offset:    [3]float32{1, 0, 0},
			Radius:    1,
			Clockwise: true,
			Color:     [4]float32{1, .5, 1, 1},
		}
	}, buildArc)
}

type CircleParams struct {
	Radius    float32    `yaml:"radius"`
	Triangles bool       `yaml:"triangles"`
	Filled    bool       `yaml:"filled"`
	Color     [4]float32 `yaml:"color"`
}

// CircleClass is a full clockwise Arc around the local origin.
func CircleClass() Class {
	return Define("Circle", func() CircleParams {
		return CircleParams{Radius: 1, Color: [4]float32{1, .5, .5, 1}}
	}, buildCircle)
}

func buildCircle(p CircleParams) (Shape, error) {
	start := [3]float32{-p.Radius, 0, 0}
	return buildArc(ArcParams{
		Start:     start,
		End:       start,
		Offset:    [3]float32{p.Radius, 0, 0},
		Radius:    p.Radius,
		Clockwise: true,
		Triangles: p.Triangles,
		Filled:    p.Filled,
		Color:     p.Color,
	})
}

func buildArc(p ArcParams) (Shape, error) {
	if !(p.Radius > 0) {
		return Shape{}, invalid("arc radius %v", p.Radius)
	}
	points := ArcPoints(p.Start, p.End, p.Offset, p.Radius, p.Clockwise)

	geo := core.Geometry{Primitive: core.LineStrip}
	if p.Triangles {
		geo.Primitive = core.TriangleFan
		center := [3]float32{
			p.Start[0] + p.Offset[0],
			p.Start[1] + p.Offset[1],
			p.Start[2] + p.Offset[2],
		}
		geo.Vertices = append(geo.Vertices, core.Vertex{Pos: center, Color: p.Color})
	}
	for _, pt := range points {
		geo.Vertices = append(geo.Vertices, core.Vertex{Pos: pt, Color: p.Color})
	}
	return Shape{Geometry: geo, Filled: p.Triangles && p.Filled}, nil
}

// ArcPoints approximates the arc from start to end around start+offset
// with chords no further than arcTolerance from the true curve. Z is
// interpolated linearly. The first point is start and the last is end.
func ArcPoints(start, end, offset [3]float32, radius float32, clockwise bool) [][3]float32 {
	cx := start[0] + offset[0]
	cy := start[1] + offset[1]
	// radius vector from the center to start
	rx, ry := -offset[0], -offset[1]
	// radius vector from the center to end
	tx, ty := end[0]-cx, end[1]-cy

	travel := math32.Atan2(rx*ty-ry*tx, rx*tx+ry*ty)
	if clockwise {
		if travel >= -arcTravelEpsilon {
			travel -= 2 * math32.Pi
		}
	} else if travel <= arcTravelEpsilon {
		travel += 2 * math32.Pi
	}

	var segments int
	if d := arcTolerance * (2*radius - arcTolerance); d > 0 {
		segments = int(math32.Floor(math32.Abs(0.5*travel*radius) / math32.Sqrt(d)))
	}

	points := [][3]float32{start}
	if segments > 0 {
		theta := travel / float32(segments)
		dz := (end[2] - start[2]) / float32(segments)
		z := start[2]
		for i := 1; i < segments; i++ {
			cos, sin := math32.Cos(float32(i)*theta), math32.Sin(float32(i)*theta)
			px := -offset[0]*cos + offset[1]*sin
			py := -offset[0]*sin - offset[1]*cos
			z += dz
			points = append(points, [3]float32{cx + px, cy + py, z})
		}
	}
	return append(points, end)
}

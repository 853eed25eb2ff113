package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Primitive is the kind of primitive the item's vertices assemble into.
type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line_strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	case TriangleFan:
		return "triangle_fan"
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ParsePrimitive reads the names printed by Primitive.String in any case.
func ParsePrimitive(s string) (Primitive, error) {
	for p := Points; p <= TriangleFan; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown primitive %q", s)
}

// Vertex is the attribute layout shared by every item: position then RGBA
// color.
type Vertex struct {
	Pos   [3]float32
	Color [4]float32
}

// Geometry is an item's local vertex data. Indices are optional.
type Geometry struct {
	Primitive Primitive
	Vertices  []Vertex
	Indices   []uint32
}

// Item is a drawable entity registered under a unique label.
type Item struct {
	ID    uuid.UUID
	Label string
	Class string

	Geometry  Geometry
	Placement Placement
	Transform Transform

	Shader    string
	LineWidth float32
	Filled    bool
	Uniforms  map[string]float32

	// Version grows with every mutation so sinks know when to re-upload.
	Version uint64
}

// NewItem validates the placement and returns a fresh item with a new ID.
func NewItem(label, class, shader string, geo Geometry, placement Placement, tr Transform) (*Item, error) {
	if err := placement.Validate(); err != nil {
		return nil, fmt.Errorf("item %q: %w", label, err)
	}
	if tr.Rotation == (mgl32.Quat{}) {
		tr.Rotation = mgl32.QuatIdent()
	}
	return &Item{
		ID:        uuid.New(),
		Label:     label,
		Class:     class,
		Geometry:  geo,
		Placement: placement,
		Transform: tr,
		Shader:    shader,
		LineWidth: 1,
		Version:   1,
	}, nil
}

func (it *Item) ModelMatrix(cam *Camera) mgl32.Mat4 {
	return it.Placement.ModelMatrix(it.Transform, cam)
}

func (it *Item) SetOrigin(origin mgl32.Vec3) {
	it.Transform.Origin = origin
	it.touch()
}

func (it *Item) SetScale(scale float32) {
	it.Transform.Scale = mgl32.Vec3{scale, scale, scale}
	it.touch()
}

// SetRotation rotates the item by angleDeg degrees around axis.
func (it *Item) SetRotation(axis mgl32.Vec3, angleDeg float32) {
	it.Transform.Rotation = AxisAngle(axis, angleDeg)
	it.touch()
}

func (it *Item) SetGeometry(geo Geometry) {
	it.Geometry = geo
	it.touch()
}

// Substitute replaces position and color of vertex i. Out of range indices
// are ignored.
func (it *Item) Substitute(i int, pos [3]float32, color [4]float32) {
	if i < 0 || i >= len(it.Geometry.Vertices) {
		return
	}
	it.Geometry.Vertices[i] = Vertex{Pos: pos, Color: color}
	it.touch()
}

// SetColor recolors the vertices at the given indices.
func (it *Item) SetColor(color [4]float32, indices ...int) {
	for _, i := range indices {
		if i >= 0 && i < len(it.Geometry.Vertices) {
			it.Geometry.Vertices[i].Color = color
		}
	}
	it.touch()
}

func (it *Item) touch() {
	it.Version++
}

func (p Primitive) MarshalText() ([]byte, error) {
	if p < Points || p > TriangleFan {
		return nil, fmt.Errorf("unknown primitive %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Primitive) UnmarshalText(b []byte) error {
	parsed, err := ParsePrimitive(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

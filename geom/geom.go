// Package geom builds the local geometry of the item classes a painter can
// create. Classes are looked up by name in a Registry; each one pairs a
// parameter struct with a generator.
package geom

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gekko3d/painter/core"
)

var (
	ErrUnknownClass  = errors.New("unknown item class")
	ErrInvalidParams = errors.New("invalid item parameters")
)

// Shape is what a generator produces: geometry plus the render hints that
// belong to the class rather than to the caller.
type Shape struct {
	Geometry core.Geometry
	Filled   bool
	Uniforms map[string]float32
}

// Class is a named geometry generator.
type Class struct {
	Name      string
	newParams func() any
	build     func(any) (Shape, error)
}

// Define builds a Class whose parameters are of type P. The generator
// accepts P, *P, or nil (defaults).
func Define[P any](name string, defaults func() P, build func(P) (Shape, error)) Class {
	return Class{
		Name: name,
		newParams: func() any {
			p := defaults()
			return &p
		},
		build: func(params any) (Shape, error) {
			switch v := params.(type) {
			case nil:
				return build(defaults())
			case P:
				return build(v)
			case *P:
				if v == nil {
					return build(defaults())
				}
				return build(*v)
			}
			return Shape{}, fmt.Errorf("%w: %s expects %T, got %T", ErrInvalidParams, name, *new(P), params)
		},
	}
}

// NewParams returns a pointer to the class's default parameters, ready to
// be decoded into.
func (c Class) NewParams() any {
	return c.newParams()
}

func (c Class) Build(params any) (Shape, error) {
	return c.build(params)
}

// Registry maps class names to generators.
type Registry struct {
	classes map[string]Class
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]Class)}
}

// Builtin returns a registry holding every class this package ships.
func Builtin() *Registry {
	r := NewRegistry()
	for _, c := range []Class{
		RawClass(),
		StarClass(),
		CoordSystemClass(),
		GridClass(),
		OrthoLineGridClass(),
		TextClass(),
		ArcClass(),
		CircleClass(),
		HeightMapClass(),
	} {
		// Names are distinct; Register cannot fail here.
		_ = r.Register(c)
	}
	return r
}

// Register adds c. Names are unique.
func (r *Registry) Register(c Class) error {
	if c.Name == "" || c.build == nil {
		return fmt.Errorf("register class: empty definition")
	}
	if _, ok := r.classes[c.Name]; ok {
		return fmt.Errorf("register class %q: already registered", c.Name)
	}
	r.classes[c.Name] = c
	return nil
}

func (r *Registry) Lookup(name string) (Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Build runs the generator of the named class.
func (r *Registry) Build(name string, params any) (Shape, error) {
	c, ok := r.classes[name]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	s, err := c.Build(params)
	if err != nil {
		return Shape{}, fmt.Errorf("build %s: %w", name, err)
	}
	return s, nil
}

func (r *Registry) NewParams(name string) (any, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return c.NewParams(), nil
}

// Names returns the registered class names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for n := range r.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

func vtx(x, y, z float32, c [4]float32) core.Vertex {
	return core.Vertex{Pos: [3]float32{x, y, z}, Color: c}
}

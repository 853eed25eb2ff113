// Package painter composes a camera, a trackball controller and an
// insertion-ordered item registry into an interactive 3D viewer core. A
// windowing adapter feeds it pointer and resize events; Render hands one
// draw command per item to a rendering Sink.
package painter

import (
	"errors"
	"fmt"
	"iter"
	"regexp"

	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Painter is not safe for concurrent use. Every call is expected from the
// thread running the host event loop.
type Painter struct {
	cfg     Config
	log     Logger
	cam     *core.Camera
	ball    *core.Trackball
	items   *core.Registry
	classes *geom.Registry

	// dragButton is the button that started the gesture in progress.
	dragButton core.Button
	dragging   bool

	released []uuid.UUID
	warned   map[uuid.UUID]bool
	// drawn holds the item versions submitted by the last Render.
	drawn map[uuid.UUID]uint64
	dirty bool
}

type Option func(*Painter)

func WithLogger(l Logger) Option {
	return func(p *Painter) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClasses replaces the built-in item classes.
func WithClasses(r *geom.Registry) Option {
	return func(p *Painter) {
		if r != nil {
			p.classes = r
		}
	}
}

func New(cfg Config, opts ...Option) (*Painter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("painter config: %w", err)
	}
	tbc, err := cfg.Navigation.trackball()
	if err != nil {
		return nil, fmt.Errorf("painter config: %w", err)
	}
	cam := core.NewCameraWith(cfg.Camera.options())
	cam.SetAspect(cfg.Window.Width, cfg.Window.Height)

	p := &Painter{
		cfg:     cfg,
		log:     NewNopLogger(),
		cam:     cam,
		ball:    core.NewTrackball(cam, tbc),
		items:   core.NewRegistry(),
		classes: geom.Builtin(),
		warned:  make(map[uuid.UUID]bool),
		drawn:   make(map[uuid.UUID]uint64),
		dirty:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Painter) Config() Config { return p.cfg }

func (p *Painter) Camera() *core.Camera { return p.cam }

func (p *Painter) Trackball() *core.Trackball { return p.ball }

func (p *Painter) Classes() *geom.Registry { return p.classes }

func (p *Painter) Logger() Logger { return p.log }

// Dirty reports whether anything changed since the last Render, including
// items mutated in place through their setters.
func (p *Painter) Dirty() bool {
	if p.dirty {
		return true
	}
	for it := range p.items.All() {
		if p.drawn[it.ID] != it.Version {
			return true
		}
	}
	return false
}

// Invalidate forces the next frame to be drawn.
func (p *Painter) Invalidate() { p.dirty = true }

type itemOptions struct {
	placement core.Placement
	rotation  mgl32.Quat
	lineWidth float32
	filled    *bool
	uniforms  map[string]float32
}

type ItemOption func(*itemOptions)

func WithPlacement(pl core.Placement) ItemOption {
	return func(o *itemOptions) { o.placement = pl }
}

// WithRotation rotates the item by angleDeg degrees around axis.
func WithRotation(axis mgl32.Vec3, angleDeg float32) ItemOption {
	return func(o *itemOptions) { o.rotation = core.AxisAngle(axis, angleDeg) }
}

func WithLineWidth(w float32) ItemOption {
	return func(o *itemOptions) { o.lineWidth = w }
}

// WithFilled overrides whether the class draws filled triangles.
func WithFilled(filled bool) ItemOption {
	return func(o *itemOptions) { o.filled = &filled }
}

func WithUniform(name string, v float32) ItemOption {
	return func(o *itemOptions) {
		if o.uniforms == nil {
			o.uniforms = make(map[string]float32)
		}
		o.uniforms[name] = v
	}
}

// ItemCreate builds an item of the named class and registers it under
// label. params is the class's parameter struct (value or pointer) or nil
// for the class defaults.
func (p *Painter) ItemCreate(class, label, shader string, scale float32, origin mgl32.Vec3, params any, opts ...ItemOption) (*core.Item, error) {
	o := itemOptions{placement: core.World(), rotation: mgl32.QuatIdent(), lineWidth: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if _, exists := p.items.Get(label); exists {
		return nil, fmt.Errorf("create %q: %w", label, core.ErrDuplicateLabel)
	}

	shape, err := p.classes.Build(class, params)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", label, err)
	}
	tr := core.NewTransform(origin, scale)
	tr.Rotation = o.rotation

	it, err := core.NewItem(label, class, shader, shape.Geometry, o.placement, tr)
	if err != nil {
		return nil, err
	}
	it.LineWidth = o.lineWidth
	it.Filled = shape.Filled
	if o.filled != nil {
		it.Filled = *o.filled
	}
	if len(shape.Uniforms) > 0 || len(o.uniforms) > 0 {
		it.Uniforms = make(map[string]float32, len(shape.Uniforms)+len(o.uniforms))
		for k, v := range shape.Uniforms {
			it.Uniforms[k] = v
		}
		for k, v := range o.uniforms {
			it.Uniforms[k] = v
		}
	}

	if _, err := p.items.Create(it); err != nil {
		return nil, err
	}
	p.log.Debugf("created %s %q (%d vertices, %s)", class, label, len(it.Geometry.Vertices), it.Placement)
	p.dirty = true
	return it, nil
}

// ItemUpdate mutates the item under label through fn. A failing fn, or a
// result that does not validate, leaves the item unchanged.
func (p *Painter) ItemUpdate(label string, fn func(*core.Item) error) (*core.Item, error) {
	it, err := p.items.Update(label, fn)
	if err != nil {
		return nil, err
	}
	p.dirty = true
	return it, nil
}

func (p *Painter) Item(label string) (*core.Item, bool) {
	return p.items.Get(label)
}

// Items yields the registered items in draw order.
func (p *Painter) Items() iter.Seq[*core.Item] {
	return p.items.All()
}

func (p *Painter) ItemCount() int {
	return p.items.Len()
}

// ItemRemove removes the item under label. Removing a missing label is a
// no-op and reports false.
func (p *Painter) ItemRemove(label string) bool {
	it, ok := p.items.Remove(label)
	if ok {
		p.forget(it)
	}
	return ok
}

// ItemRemoveMatching removes every item whose label matches pattern from
// its start, e.g. "mystar" removes "mystar1" and "mystar22" but not
// "a_mystar".
func (p *Painter) ItemRemoveMatching(pattern string) (int, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return 0, fmt.Errorf("remove matching %q: %w", pattern, err)
	}
	removed := p.items.RemoveMatching(re)
	for _, it := range removed {
		p.forget(it)
	}
	return len(removed), nil
}

// Clear removes every item.
func (p *Painter) Clear() {
	for _, it := range p.items.Clear() {
		p.forget(it)
	}
}

func (p *Painter) forget(it *core.Item) {
	p.released = append(p.released, it.ID)
	delete(p.warned, it.ID)
	delete(p.drawn, it.ID)
	p.log.Debugf("removed %q", it.Label)
	p.dirty = true
}

// PointerDown starts a drag gesture. A gesture already in progress is
// replaced.
func (p *Painter) PointerDown(button core.Button, x, y float32) {
	p.ball.BeginDrag(button, x, y)
	p.dragButton = button
	_, p.dragging = p.ball.Active()
}

// PointerMove continues the gesture in progress, if any.
func (p *Painter) PointerMove(x, y float32) error {
	if !p.dragging {
		return nil
	}
	err := p.ball.ContinueDrag(x, y)
	p.dirty = true
	if errors.Is(err, core.ErrDegenerateQuaternion) {
		p.log.Warnf("rotation degenerated, orientation reset to identity")
	}
	return err
}

// PointerUp ends the gesture if button is the one that started it.
// Releasing a button whose gesture was already replaced does nothing.
func (p *Painter) PointerUp(button core.Button) {
	if !p.dragging || button != p.dragButton {
		return
	}
	p.ball.EndDrag()
	p.dragging = false
}

// Wheel dollies the camera; negative deltas move forward.
func (p *Painter) Wheel(delta float32) {
	if delta == 0 {
		return
	}
	p.ball.Wheel(delta)
	p.dirty = true
}

// Resize records the viewport size. Zero sizes (minimized windows) are
// ignored.
func (p *Painter) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.cam.SetAspect(width, height)
	p.dirty = true
}

// ResetView puts the camera back where it started.
func (p *Painter) ResetView() {
	p.cam.Reset()
	p.dirty = true
}

package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Button identifies a logical pointer button, independent of the windowing
// library delivering the events.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	}
	return "unknown"
}

// DragMode is the camera action a drag gesture performs.
type DragMode int

const (
	DragNone DragMode = iota
	DragRotate
	DragPan
	DragDolly
)

func (m DragMode) String() string {
	switch m {
	case DragRotate:
		return "rotate"
	case DragPan:
		return "pan"
	case DragDolly:
		return "dolly"
	}
	return "none"
}

// TrackballConfig holds the tuning constants of the controller. They are a
// UX choice; DefaultTrackballConfig documents the defaults.
type TrackballConfig struct {
	// RotateSensitivity is degrees of rotation per pixel of drag.
	RotateSensitivity float32
	// PanSensitivity is world units per pixel per unit of look distance.
	PanSensitivity float32
	// DollyWheelSensitivity is world units per wheel step.
	DollyWheelSensitivity float32
	// DollyDragSensitivity is world units per pixel of vertical drag.
	DollyDragSensitivity float32
	// MinLookDistance bounds the look distance used to scale panning.
	MinLookDistance float32

	Buttons map[Button]DragMode
}

func DefaultTrackballConfig() TrackballConfig {
	return TrackballConfig{
		RotateSensitivity:     0.25,
		PanSensitivity:        0.002,
		DollyWheelSensitivity: 0.1,
		DollyDragSensitivity:  0.05,
		MinLookDistance:       0.01,
		Buttons: map[Button]DragMode{
			ButtonLeft:   DragRotate,
			ButtonMiddle: DragPan,
			ButtonRight:  DragDolly,
		},
	}
}

// Trackball turns pointer gestures into camera motion. It keeps only the
// state of the gesture in progress; all navigation state lives on the
// Camera. Not safe for concurrent use.
type Trackball struct {
	cam *Camera
	cfg TrackballConfig

	mode         DragMode
	lastX, lastY float32
}

func NewTrackball(cam *Camera, cfg TrackballConfig) *Trackball {
	if cfg.Buttons == nil {
		cfg.Buttons = DefaultTrackballConfig().Buttons
	}
	return &Trackball{cam: cam, cfg: cfg}
}

func (t *Trackball) Config() TrackballConfig { return t.cfg }

func (t *Trackball) Camera() *Camera { return t.cam }

// Active reports the gesture in progress.
func (t *Trackball) Active() (DragMode, bool) {
	return t.mode, t.mode != DragNone
}

// BeginDrag starts a gesture for button at (x, y). A gesture already in
// progress is replaced: the last BeginDrag wins. Buttons without a mapping
// leave the controller idle.
func (t *Trackball) BeginDrag(button Button, x, y float32) {
	t.mode = t.cfg.Buttons[button]
	t.lastX, t.lastY = x, y
}

// ContinueDrag applies the motion since the last recorded pointer position.
// It is a no-op when no gesture is active.
func (t *Trackball) ContinueDrag(x, y float32) error {
	if t.mode == DragNone {
		return nil
	}
	dx, dy := x-t.lastX, y-t.lastY
	t.lastX, t.lastY = x, y

	switch t.mode {
	case DragRotate:
		return t.rotate(dx, dy)
	case DragPan:
		t.pan(dx, dy)
	case DragDolly:
		t.cam.Dolly(-dy*t.cfg.DollyDragSensitivity, t.cfg.MinLookDistance)
	}
	return nil
}

func (t *Trackball) EndDrag() {
	t.mode = DragNone
}

// Wheel dollies the camera. Negative deltas move forward.
func (t *Trackball) Wheel(delta float32) {
	t.cam.Dolly(-delta*t.cfg.DollyWheelSensitivity, t.cfg.MinLookDistance)
}

// rotate turns the camera around an axis lying in the screen plane,
// perpendicular to the drag direction. Screen y grows downwards.
func (t *Trackball) rotate(dx, dy float32) error {
	dist := mgl32.Vec2{dx, dy}.Len()
	axis := t.cam.Right().Mul(dy).Add(t.cam.Up().Mul(dx))
	delta := AxisAngle(axis, dist*t.cfg.RotateSensitivity)
	return t.cam.Rotate(delta)
}

func (t *Trackball) pan(dx, dy float32) {
	dist := t.cam.LookDistance
	if dist < t.cfg.MinLookDistance {
		dist = t.cfg.MinLookDistance
	}
	scale := t.cfg.PanSensitivity * dist
	offset := t.cam.Right().Mul(-dx * scale).Add(t.cam.Up().Mul(dy * scale))
	t.cam.Translate(offset)
}

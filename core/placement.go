package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// PlacementMode selects how an item's model matrix relates to the camera.
type PlacementMode int

const (
	// PlacementWorld uses the local transform as is.
	PlacementWorld PlacementMode = iota
	// PlacementBillboard keeps the item parallel to the view plane.
	PlacementBillboard
	// PlacementBillboardAxis cancels camera rotation around one world axis only.
	PlacementBillboardAxis
	// PlacementOverlay pins the item in normalized device coordinates.
	PlacementOverlay
)

func (m PlacementMode) String() string {
	switch m {
	case PlacementWorld:
		return "world"
	case PlacementBillboard:
		return "billboard"
	case PlacementBillboardAxis:
		return "billboard-axis"
	case PlacementOverlay:
		return "overlay"
	}
	return fmt.Sprintf("PlacementMode(%d)", int(m))
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Vec returns the unit world vector of the axis.
func (a Axis) Vec() mgl32.Vec3 {
	var v mgl32.Vec3
	if a >= AxisX && a <= AxisZ {
		v[a] = 1
	}
	return v
}

// Placement is the placement mode of an item plus the constraint axis used
// by PlacementBillboardAxis.
type Placement struct {
	Mode PlacementMode
	Axis Axis
}

func World() Placement { return Placement{Mode: PlacementWorld} }

func Billboard() Placement { return Placement{Mode: PlacementBillboard} }

func BillboardAxis(axis Axis) Placement {
	return Placement{Mode: PlacementBillboardAxis, Axis: axis}
}

func Overlay() Placement { return Placement{Mode: PlacementOverlay} }

func (p Placement) Validate() error {
	switch p.Mode {
	case PlacementWorld, PlacementBillboard, PlacementOverlay:
		return nil
	case PlacementBillboardAxis:
		if p.Axis < AxisX || p.Axis > AxisZ {
			return fmt.Errorf("%w: billboard axis %v", ErrInvalidPlacementMode, p.Axis)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidPlacementMode, p.Mode)
}

func (p Placement) String() string {
	if p.Mode == PlacementBillboardAxis {
		return "billboard:" + p.Axis.String()
	}
	return p.Mode.String()
}

// ParsePlacement reads "world", "billboard", "billboard:x|y|z" or "overlay".
// The empty string is world placement.
func ParsePlacement(s string) (Placement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "world":
		return World(), nil
	case "billboard":
		return Billboard(), nil
	case "overlay", "overlay2d":
		return Overlay(), nil
	}
	if rest, ok := strings.CutPrefix(s, "billboard:"); ok {
		switch rest {
		case "x":
			return BillboardAxis(AxisX), nil
		case "y":
			return BillboardAxis(AxisY), nil
		case "z":
			return BillboardAxis(AxisZ), nil
		}
	}
	return Placement{}, fmt.Errorf("%w: %q", ErrInvalidPlacementMode, s)
}

// MarshalText and UnmarshalText let placements appear in config and scene
// files as plain strings.
func (p Placement) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *Placement) UnmarshalText(b []byte) error {
	parsed, err := ParsePlacement(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ModelMatrix places a local transform according to p, given the camera.
func (p Placement) ModelMatrix(t Transform, cam *Camera) mgl32.Mat4 {
	switch p.Mode {
	case PlacementBillboard:
		return t.translate().Mul4(cam.Orientation.Mat4()).Mul4(t.scale())
	case PlacementBillboardAxis:
		return t.translate().Mul4(axisBillboard(p.Axis, t.Rotation, cam)).Mul4(t.scale())
	case PlacementOverlay:
		return t.translate().Mul4(t.scale())
	}
	return t.Matrix()
}

// axisBillboard builds a rotation whose local Y is the world axis and whose
// local Z is the camera's backward direction, projected onto the plane
// normal to the axis. It depends on the camera orientation only, so items
// sharing an axis stay parallel wherever they are. When the camera looks along the axis there is no horizontal
// component and the item's own rotation is kept.
func axisBillboard(axis Axis, fallback mgl32.Quat, cam *Camera) mgl32.Mat4 {
	up := axis.Vec()
	back := cam.Forward().Mul(-1)
	back[axis] = 0
	if back.Len() < 1e-5 {
		return fallback.Mat4()
	}
	back = back.Normalize()
	right := up.Cross(back)
	return mgl32.Mat4{
		right[0], right[1], right[2], 0,
		up[0], up[1], up[2], 0,
		back[0], back[1], back[2], 0,
		0, 0, 0, 1,
	}
}

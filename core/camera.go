package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFOV          = 45.0
	DefaultNear         = 0.1
	DefaultFar          = 100000.0
	DefaultLookDistance = 10.0
)

// Camera holds the navigation state of the viewer. Orientation maps camera
// space to world space; the camera looks down its local -Z axis with +Y up.
//
// FOV is fixed at construction. Navigation only touches Position,
// Orientation and LookDistance.
type Camera struct {
	Position     mgl32.Vec3
	Orientation  mgl32.Quat
	LookDistance float32

	fov    float32
	near   float32
	far    float32
	aspect float32

	home       mgl32.Vec3
	homeOrient mgl32.Quat
	homeLook   float32
}

type CameraOptions struct {
	Position     mgl32.Vec3
	Orientation  mgl32.Quat
	FOV          float32
	Near         float32
	Far          float32
	LookDistance float32
}

func NewCamera() *Camera {
	return NewCameraWith(CameraOptions{})
}

// NewCameraWith creates a camera, falling back to the package defaults for
// zero-valued options.
func NewCameraWith(opts CameraOptions) *Camera {
	if opts.FOV <= 0 {
		opts.FOV = DefaultFOV
	}
	if opts.Near <= 0 {
		opts.Near = DefaultNear
	}
	if opts.Far <= opts.Near {
		opts.Far = DefaultFar
	}
	if opts.LookDistance <= 0 {
		opts.LookDistance = DefaultLookDistance
	}
	q, err := NormalizeQuat(opts.Orientation)
	if err != nil {
		q = mgl32.QuatIdent()
	}
	return &Camera{
		Position:     opts.Position,
		Orientation:  q,
		LookDistance: opts.LookDistance,
		fov:          opts.FOV,
		near:         opts.Near,
		far:          opts.Far,
		aspect:       1,
		home:         opts.Position,
		homeOrient:   q,
		homeLook:     opts.LookDistance,
	}
}

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

func (c *Camera) Near() float32 { return c.near }

func (c *Camera) Far() float32 { return c.far }

func (c *Camera) Aspect() float32 { return c.aspect }

// SetAspect records the viewport size. Degenerate sizes are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
}

// ViewMatrix is the inverse of the camera's world placement:
// inv(R) * inv(T).
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	invRotate := c.Orientation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return invRotate.Mul4(invTranslate)
}

// ProjectionMatrix builds the perspective projection for the given aspect
// ratio. A non-positive aspect uses the last value passed to SetAspect.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = c.aspect
	}
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// SetOrientation stores q renormalized.
func (c *Camera) SetOrientation(q mgl32.Quat) error {
	n, err := NormalizeQuat(q)
	c.Orientation = n
	return err
}

// Rotate left-multiplies a world-space rotation into the orientation.
func (c *Camera) Rotate(delta mgl32.Quat) error {
	return c.SetOrientation(delta.Mul(c.Orientation))
}

func (c *Camera) Translate(offset mgl32.Vec3) {
	c.Position = c.Position.Add(offset)
}

// Dolly moves the camera along its look axis. Positive amounts move
// forward and shorten LookDistance down to minDistance.
func (c *Camera) Dolly(amount, minDistance float32) {
	c.Position = c.Position.Add(c.Forward().Mul(amount))
	c.LookDistance -= amount
	if c.LookDistance < minDistance {
		c.LookDistance = minDistance
	}
}

// Reset restores the construction position, orientation and look distance.
func (c *Camera) Reset() {
	c.Position = c.home
	c.Orientation = c.homeOrient
	c.LookDistance = c.homeLook
}

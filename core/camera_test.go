package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeEnough(a, b, tolerance float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func assertVec3(t *testing.T, want, got mgl32.Vec3, tolerance float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if !closeEnough(want[i], got[i], tolerance) {
			t.Errorf("component %d: expected %v, got %v (want %v, got %v)", i, want[i], got[i], want, got)
		}
	}
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()

	assert.Equal(t, mgl32.Vec3{}, cam.Position)
	assert.Equal(t, mgl32.QuatIdent(), cam.Orientation)
	assert.Equal(t, float32(DefaultFOV), cam.FOV())
	assert.Equal(t, float32(DefaultLookDistance), cam.LookDistance)

	assertVec3(t, mgl32.Vec3{0, 0, -1}, cam.Forward(), 1e-6)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, cam.Right(), 1e-6)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, cam.Up(), 1e-6)
}

func TestCameraViewMatrix(t *testing.T) {
	cam := NewCameraWith(CameraOptions{Position: mgl32.Vec3{0, 0, 10}})

	view := cam.ViewMatrix()
	assert.Equal(t, view, cam.ViewMatrix(), "view matrix must be idempotent")

	// The camera position maps to the view-space origin.
	eye := view.Mul4x1(cam.Position.Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{}, eye, 1e-5)

	// A point in front of the camera lands on the -Z axis.
	ahead := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -10}, ahead, 1e-5)

	// Rotated camera: the view matrix agrees with LookAt.
	require.NoError(t, cam.SetOrientation(mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 1, 0})))
	want := mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Forward()), cam.Up())
	got := cam.ViewMatrix()
	for i := 0; i < 16; i++ {
		if !closeEnough(want[i], got[i], 1e-5) {
			t.Fatalf("view[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestCameraProjectionMatrix(t *testing.T) {
	cam := NewCamera()
	cam.SetAspect(1600, 800)
	assert.Equal(t, float32(2), cam.Aspect())

	want := mgl32.Perspective(mgl32.DegToRad(45), 2, DefaultNear, DefaultFar)
	assert.Equal(t, want, cam.ProjectionMatrix(2))
	assert.Equal(t, want, cam.ProjectionMatrix(0), "non-positive aspect falls back to the recorded one")

	cam.SetAspect(0, 100)
	assert.Equal(t, float32(2), cam.Aspect(), "degenerate viewport sizes are ignored")
}

func TestCameraSetOrientationDegenerate(t *testing.T) {
	cam := NewCamera()
	err := cam.SetOrientation(mgl32.Quat{})
	assert.ErrorIs(t, err, ErrDegenerateQuaternion)
	assert.Equal(t, mgl32.QuatIdent(), cam.Orientation)

	require.NoError(t, cam.SetOrientation(mgl32.Quat{W: 2}))
	assert.Equal(t, mgl32.QuatIdent(), cam.Orientation)
}

func TestCameraDolly(t *testing.T) {
	cam := NewCameraWith(CameraOptions{Position: mgl32.Vec3{0, 0, 10}, LookDistance: 1})
	cam.Dolly(0.5, 0.01)
	assertVec3(t, mgl32.Vec3{0, 0, 9.5}, cam.Position, 1e-6)
	assert.InDelta(t, 0.5, cam.LookDistance, 1e-6)

	cam.Dolly(5, 0.01)
	assert.InDelta(t, 0.01, cam.LookDistance, 1e-6, "look distance is clamped")
	assert.Equal(t, float32(DefaultFOV), cam.FOV())

	cam.Reset()
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Position)
	assert.Equal(t, float32(1), cam.LookDistance)
}

func TestCameraResetRestoresOrientation(t *testing.T) {
	start := AxisAngle(mgl32.Vec3{1, 0, 0}, 45)
	cam := NewCameraWith(CameraOptions{
		Position:     mgl32.Vec3{0, -50, 50},
		Orientation:  start,
		LookDistance: 70,
	})
	require.NoError(t, cam.Rotate(AxisAngle(mgl32.Vec3{0, 0, 1}, 30)))
	cam.Translate(mgl32.Vec3{5, 5, 0})
	require.NotEqual(t, start, cam.Orientation)

	cam.Reset()
	assert.InDelta(t, 1, math.Abs(float64(cam.Orientation.Dot(start))), 1e-6)
	assert.Equal(t, mgl32.Vec3{0, -50, 50}, cam.Position)
	assert.Equal(t, float32(70), cam.LookDistance)
}

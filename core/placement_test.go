package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotationPart(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3()
}

func assertMat3(t *testing.T, want, got mgl32.Mat3, tol float32) {
	t.Helper()
	for i := range want {
		if !closeEnough(want[i], got[i], tol) {
			t.Fatalf("matrix mismatch at %d:\nwant %v\ngot  %v", i, want, got)
		}
	}
}

func TestBillboardFacesCamera(t *testing.T) {
	cam, tb := newTestTrackball()
	tr := NewTransform(mgl32.Vec3{3, -2, 1}, 1)
	tr.Rotation = mgl32.QuatRotate(1.1, mgl32.Vec3{0, 0, 1})

	drags := [][2]float32{{0, 0}, {40, 0}, {0, -90}, {-70, 35}, {300, 120}}
	tb.BeginDrag(ButtonLeft, 0, 0)
	for _, d := range drags {
		require.NoError(t, tb.ContinueDrag(d[0], d[1]))
		mv := cam.ViewMatrix().Mul4(Billboard().ModelMatrix(tr, cam))
		assertMat3(t, mgl32.Ident3(), rotationPart(mv), 1e-5)
		assertVec3(t, tr.Origin, Billboard().ModelMatrix(tr, cam).Col(3).Vec3(), 0)
	}
}

func TestBillboardKeepsScale(t *testing.T) {
	cam := NewCamera()
	require.NoError(t, cam.SetOrientation(mgl32.QuatRotate(0.7, mgl32.Vec3{1, 0, 0})))
	tr := NewTransform(mgl32.Vec3{}, 2.5)

	mv := cam.ViewMatrix().Mul4(Billboard().ModelMatrix(tr, cam))
	assertMat3(t, mgl32.Diag3(mgl32.Vec3{2.5, 2.5, 2.5}), rotationPart(mv), 1e-5)
}

func TestOverlayIgnoresCamera(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{-0.9, 0.8, 0}, 0.05)
	tr.Rotation = mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})

	cam := NewCamera()
	before := Overlay().ModelMatrix(tr, cam)

	cam.Translate(mgl32.Vec3{100, -3, 7})
	require.NoError(t, cam.Rotate(mgl32.QuatRotate(2, mgl32.Vec3{1, 1, 1}.Normalize())))
	cam.Dolly(4, 0.01)
	after := Overlay().ModelMatrix(tr, cam)

	assert.Equal(t, before, after)
	assert.Equal(t, mgl32.Translate3D(-0.9, 0.8, 0).Mul4(mgl32.Scale3D(0.05, 0.05, 0.05)), after)
}

func TestWorldPlacementIsLocalTransform(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{1, 2, 3}, 2)
	tr.Rotation = AxisAngle(mgl32.Vec3{0, 0, 1}, 90)
	cam := NewCamera()
	require.NoError(t, cam.Rotate(mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0})))

	m := World().ModelMatrix(tr, cam)
	assert.Equal(t, tr.Matrix(), m)
	assertVec3(t, mgl32.Vec3{1, 4, 3}, m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3(), 1e-5)
}

func TestBillboardAxisMatchesYaw(t *testing.T) {
	cam := NewCamera()
	require.NoError(t, cam.SetOrientation(AxisAngle(mgl32.Vec3{0, 1, 0}, 30)))
	tr := NewTransform(mgl32.Vec3{}, 1)

	got := rotationPart(BillboardAxis(AxisY).ModelMatrix(tr, cam))
	assertMat3(t, cam.Orientation.Mat4().Mat3(), got, 1e-5)
}

func TestBillboardAxisKeepsAxis(t *testing.T) {
	cam := NewCamera()
	yaw := AxisAngle(mgl32.Vec3{0, 1, 0}, -50)
	pitch := AxisAngle(mgl32.Vec3{1, 0, 0}, -35)
	require.NoError(t, cam.SetOrientation(yaw.Mul(pitch)))
	tr := NewTransform(mgl32.Vec3{}, 1)

	m := BillboardAxis(AxisY).ModelMatrix(tr, cam)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, m.Col(1).Vec3(), 1e-6)

	back := m.Col(2).Vec3()
	assert.InDelta(t, 0, back.Y(), 1e-6)
	assert.InDelta(t, 1, back.Len(), 1e-5)
	// The local +Z faces the viewer's horizontal direction.
	assert.Greater(t, back.Dot(cam.Forward().Mul(-1)), float32(0))
}

func TestBillboardAxisIgnoresItemPosition(t *testing.T) {
	cam := NewCameraWith(CameraOptions{Position: mgl32.Vec3{0, 0, 100}})
	require.NoError(t, cam.SetOrientation(AxisAngle(mgl32.Vec3{1, 0, 0}, 60)))

	center := BillboardAxis(AxisZ).ModelMatrix(NewTransform(mgl32.Vec3{}, 1), cam)
	offCenter := BillboardAxis(AxisZ).ModelMatrix(NewTransform(mgl32.Vec3{300, -200, 0}, 1), cam)
	assertMat3(t, rotationPart(center), rotationPart(offCenter), 1e-6)

	back := cam.Forward().Mul(-1)
	back[AxisZ] = 0
	assertVec3(t, back.Normalize(), offCenter.Col(2).Vec3(), 1e-5)
}

func TestBillboardAxisDegenerateKeepsRotation(t *testing.T) {
	cam := NewCamera()
	require.NoError(t, cam.SetOrientation(AxisAngle(mgl32.Vec3{1, 0, 0}, -90)))
	assertVec3(t, mgl32.Vec3{0, -1, 0}, cam.Forward(), 1e-6)

	tr := NewTransform(mgl32.Vec3{}, 1)
	tr.Rotation = AxisAngle(mgl32.Vec3{0, 0, 1}, 45)

	m := BillboardAxis(AxisY).ModelMatrix(tr, cam)
	assertMat3(t, tr.Rotation.Mat4().Mat3(), rotationPart(m), 1e-6)
}

func TestParsePlacement(t *testing.T) {
	cases := []struct {
		in   string
		want Placement
	}{
		{"", World()},
		{"world", World()},
		{" Billboard ", Billboard()},
		{"overlay", Overlay()},
		{"overlay2d", Overlay()},
		{"billboard:x", BillboardAxis(AxisX)},
		{"billboard:Z", BillboardAxis(AxisZ)},
	}
	for _, tc := range cases {
		got, err := ParsePlacement(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"sideways", "billboard:w", "billboard:"} {
		_, err := ParsePlacement(bad)
		assert.ErrorIs(t, err, ErrInvalidPlacementMode, bad)
	}
}

func TestPlacementTextRoundTrip(t *testing.T) {
	p := BillboardAxis(AxisY)
	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "billboard:y", string(b))

	var back Placement
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, p, back)
}

func TestPlacementValidate(t *testing.T) {
	assert.NoError(t, Overlay().Validate())
	assert.ErrorIs(t, Placement{Mode: PlacementMode(42)}.Validate(), ErrInvalidPlacementMode)
	assert.ErrorIs(t, Placement{Mode: PlacementBillboardAxis, Axis: Axis(5)}.Validate(), ErrInvalidPlacementMode)

	_, err := Placement{Mode: -1}.MarshalText()
	assert.ErrorIs(t, err, ErrInvalidPlacementMode)
}

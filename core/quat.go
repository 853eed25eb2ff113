package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// quatEpsilon is the squared length below which a quaternion cannot be
// normalized meaningfully.
const quatEpsilon = 1e-12

// NormalizeQuat returns q scaled to unit length. A near-zero or non-finite
// quaternion normalizes to the identity and ErrDegenerateQuaternion.
func NormalizeQuat(q mgl32.Quat) (mgl32.Quat, error) {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])
	sq := w*w + x*x + y*y + z*z
	if sq < quatEpsilon || math.IsNaN(sq) || math.IsInf(sq, 0) {
		return mgl32.QuatIdent(), ErrDegenerateQuaternion
	}
	inv := 1 / math.Sqrt(sq)
	return mgl32.Quat{
		W: float32(w * inv),
		V: mgl32.Vec3{float32(x * inv), float32(y * inv), float32(z * inv)},
	}, nil
}

// AxisAngle builds a unit rotation of angleDeg degrees around axis.
// A zero axis or zero angle yields the identity.
func AxisAngle(axis mgl32.Vec3, angleDeg float32) mgl32.Quat {
	if angleDeg == 0 || axis.Len() < 1e-9 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(angleDeg), axis.Normalize())
}

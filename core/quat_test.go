package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quatLen(q mgl32.Quat) float32 {
	return float32(math.Sqrt(float64(q.Dot(q))))
}

func TestNormalizeQuat(t *testing.T) {
	tests := []struct {
		name    string
		in      mgl32.Quat
		want    mgl32.Quat
		wantErr error
	}{
		{"identity", mgl32.QuatIdent(), mgl32.QuatIdent(), nil},
		{"scaled", mgl32.Quat{W: 0, V: mgl32.Vec3{0, 3, 0}}, mgl32.Quat{V: mgl32.Vec3{0, 1, 0}}, nil},
		{"zero", mgl32.Quat{}, mgl32.QuatIdent(), ErrDegenerateQuaternion},
		{"tiny", mgl32.Quat{W: 1e-8}, mgl32.QuatIdent(), ErrDegenerateQuaternion},
		{"nan", mgl32.Quat{W: float32(math.NaN())}, mgl32.QuatIdent(), ErrDegenerateQuaternion},
		{"inf", mgl32.Quat{W: float32(math.Inf(1))}, mgl32.QuatIdent(), ErrDegenerateQuaternion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuat(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, got.ApproxEqualThreshold(tt.want, 1e-6), "expected %v, got %v", tt.want, got)
			assert.InDelta(t, 1, quatLen(got), 1e-6)
		})
	}
}

func TestAxisAngle(t *testing.T) {
	assert.Equal(t, mgl32.QuatIdent(), AxisAngle(mgl32.Vec3{}, 90))
	assert.Equal(t, mgl32.QuatIdent(), AxisAngle(mgl32.Vec3{0, 1, 0}, 0))

	q := AxisAngle(mgl32.Vec3{0, 0, 5}, 90)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, q.Rotate(mgl32.Vec3{1, 0, 0}), 1e-6)
}

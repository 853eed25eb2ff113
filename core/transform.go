package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is an item's local placement: origin, rotation and scale.
type Transform struct {
	Origin   mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(origin mgl32.Vec3, scale float32) Transform {
	return Transform{
		Origin:   origin,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{scale, scale, scale},
	}
}

// Matrix returns the local transform M = T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	return t.translate().Mul4(t.Rotation.Mat4()).Mul4(t.scale())
}

func (t Transform) translate() mgl32.Mat4 {
	return mgl32.Translate3D(t.Origin.X(), t.Origin.Y(), t.Origin.Z())
}

func (t Transform) scale() mgl32.Mat4 {
	return mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
}

package app

import (
	"testing"

	"github.com/gekko3d/painter/core"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestMapButton(t *testing.T) {
	cases := []struct {
		in   glfw.MouseButton
		want core.Button
		ok   bool
	}{
		{glfw.MouseButtonLeft, core.ButtonLeft, true},
		{glfw.MouseButtonMiddle, core.ButtonMiddle, true},
		{glfw.MouseButtonRight, core.ButtonRight, true},
		{glfw.MouseButton4, 0, false},
	}
	for _, c := range cases {
		got, ok := MapButton(c.in)
		assert.Equal(t, c.ok, ok, "button %d", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "button %d", c.in)
		}
	}
}

func TestWheelDelta(t *testing.T) {
	assert.Equal(t, float32(-1), WheelDelta(1))
	assert.Equal(t, float32(2.5), WheelDelta(-2.5))
	assert.Equal(t, float32(0), WheelDelta(0))
}

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/core"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformBufferSize is the size of every per-item uniform buffer. It is
// larger than ItemUniforms so the binding matches the layout's
// MinBindingSize.
const UniformBufferSize = 256

// ItemUniforms matches the WGSL ItemUniforms struct.
type ItemUniforms struct {
	Model mgl32.Mat4
	View  mgl32.Mat4
	Proj  mgl32.Mat4
	// x: height_min, y: height_max
	Params [4]float32
}

// clipDepth maps OpenGL clip depth [-w, w] onto the WebGPU range [0, w].
var clipDepth = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// PackUniforms lays out the matrices and named uniforms of cmd the way the
// shaders read them. The projection is remapped to WebGPU clip depth.
// Unknown uniform names are ignored.
func PackUniforms(cmd painter.DrawCommand) ItemUniforms {
	u := ItemUniforms{
		Model: cmd.Model,
		View:  cmd.View,
		Proj:  clipDepth.Mul4(cmd.Projection),
	}
	u.Params[0] = cmd.Uniforms["height_min"]
	u.Params[1] = cmd.Uniforms["height_max"]
	return u
}

// Topology maps an item primitive to the pipeline topology used to draw it.
// Fans have no WebGPU counterpart and are drawn as expanded triangle lists.
func Topology(p core.Primitive) wgpu.PrimitiveTopology {
	switch p {
	case core.Points:
		return wgpu.PrimitiveTopologyPointList
	case core.Lines:
		return wgpu.PrimitiveTopologyLineList
	case core.LineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case core.TriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	}
	return wgpu.PrimitiveTopologyTriangleList
}

// isStrip reports whether the topology needs a strip index format.
func isStrip(t wgpu.PrimitiveTopology) bool {
	return t == wgpu.PrimitiveTopologyLineStrip || t == wgpu.PrimitiveTopologyTriangleStrip
}

// FanIndices turns a triangle fan into triangle list indices. The fan is
// given by indices, or by the first n vertices when indices is empty.
// Fans with fewer than three corners yield nil.
func FanIndices(n int, indices []uint32) []uint32 {
	corner := func(i int) uint32 {
		if len(indices) > 0 {
			return indices[i]
		}
		return uint32(i)
	}
	count := n
	if len(indices) > 0 {
		count = len(indices)
	}
	if count < 3 {
		return nil
	}
	out := make([]uint32, 0, (count-2)*3)
	for i := 1; i < count-1; i++ {
		out = append(out, corner(0), corner(i), corner(i+1))
	}
	return out
}

// drawIndices returns the index data uploaded for cmd, or nil when the item
// is drawn without an index buffer.
func drawIndices(cmd painter.DrawCommand) []uint32 {
	if cmd.Primitive == core.TriangleFan {
		return FanIndices(len(cmd.Vertices), cmd.Indices)
	}
	return cmd.Indices
}

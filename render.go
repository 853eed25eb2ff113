package painter

import (
	"errors"
	"fmt"

	"github.com/gekko3d/painter/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var ErrShaderNotFound = errors.New("shader not found")

// DrawCommand is one item's draw call. Vertices, Indices and Uniforms
// alias the item's data and are valid only during Sink.Draw.
type DrawCommand struct {
	ItemID  uuid.UUID
	Label   string
	Version uint64

	Primitive core.Primitive
	Vertices  []core.Vertex
	Indices   []uint32

	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	Shader    string
	LineWidth float32
	Filled    bool
	Uniforms  map[string]float32
	// Overlay is set for screen-space items, drawn on top of the scene.
	Overlay bool
}

// Sink is the rendering backend. It owns shader programs and GPU buffers.
type Sink interface {
	HasShader(name string) bool
	Draw(cmd DrawCommand) error
}

// FrameSink is implemented by sinks that need to bracket a frame.
type FrameSink interface {
	Sink
	BeginFrame() error
	EndFrame() error
}

// ItemReleaser is implemented by sinks that keep per-item resources.
// ReleaseItem is called on the next frame after an item is removed.
type ItemReleaser interface {
	ReleaseItem(id uuid.UUID)
}

// FrameStats reports what a Render call did.
type FrameStats struct {
	Drawn int
	// Skipped lists the labels of items whose shader the sink could not
	// resolve.
	Skipped []string
	Errors  []error
}

// Err joins every error of the frame, or returns nil.
func (s FrameStats) Err() error {
	return errors.Join(s.Errors...)
}

// Render submits every item to sink in draw order. An item whose shader
// cannot be resolved, or whose draw fails, is reported and skipped; the
// frame always runs to the end.
func (p *Painter) Render(sink Sink) FrameStats {
	var stats FrameStats

	fs, framed := sink.(FrameSink)
	if framed {
		if err := fs.BeginFrame(); err != nil {
			p.log.Errorf("begin frame: %v", err)
			stats.Errors = append(stats.Errors, fmt.Errorf("begin frame: %w", err))
			return stats
		}
	}

	if r, ok := sink.(ItemReleaser); ok {
		for _, id := range p.released {
			r.ReleaseItem(id)
		}
	}
	p.released = p.released[:0]

	view := p.cam.ViewMatrix()
	proj := p.cam.ProjectionMatrix(0)
	ident := mgl32.Ident4()

	for it := range p.items.All() {
		p.drawn[it.ID] = it.Version
		if !sink.HasShader(it.Shader) {
			err := fmt.Errorf("item %q: %w: %q", it.Label, ErrShaderNotFound, it.Shader)
			if !p.warned[it.ID] {
				p.log.Warnf("skipping %v", err)
				p.warned[it.ID] = true
			}
			stats.Skipped = append(stats.Skipped, it.Label)
			stats.Errors = append(stats.Errors, err)
			continue
		}

		cmd := DrawCommand{
			ItemID:     it.ID,
			Label:      it.Label,
			Version:    it.Version,
			Primitive:  it.Geometry.Primitive,
			Vertices:   it.Geometry.Vertices,
			Indices:    it.Geometry.Indices,
			Model:      it.ModelMatrix(p.cam),
			View:       view,
			Projection: proj,
			Shader:     it.Shader,
			LineWidth:  it.LineWidth,
			Filled:     it.Filled,
			Uniforms:   it.Uniforms,
		}
		if it.Placement.Mode == core.PlacementOverlay {
			cmd.View, cmd.Projection = ident, ident
			cmd.Overlay = true
		}

		if err := sink.Draw(cmd); err != nil {
			p.log.Errorf("draw %q: %v", it.Label, err)
			stats.Errors = append(stats.Errors, fmt.Errorf("draw %q: %w", it.Label, err))
			continue
		}
		stats.Drawn++
	}

	if framed {
		if err := fs.EndFrame(); err != nil {
			p.log.Errorf("end frame: %v", err)
			stats.Errors = append(stats.Errors, fmt.Errorf("end frame: %w", err))
		}
	}
	p.dirty = false
	return stats
}

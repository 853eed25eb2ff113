// Package gpu draws painter items with WebGPU. A Renderer is the painter's
// frame sink: it owns one pipeline per shader program and topology, and one
// set of buffers per item.
package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/shaders"
	"github.com/google/uuid"
)

var (
	errNoFrame          = errors.New("draw outside of a frame")
	ErrDuplicateProgram = errors.New("program already registered")
)

// DepthFormat is the format of the depth attachment shared by every
// pipeline.
const DepthFormat = wgpu.TextureFormatDepth24Plus

const vertexSize = unsafe.Sizeof(core.Vertex{})

type pipelineKey struct {
	shader   string
	topology wgpu.PrimitiveTopology
	depth    bool
}

// program is a compiled shader module. Depth programs test and write the
// depth buffer; the others draw on top of whatever is already there.
type program struct {
	module *wgpu.ShaderModule
	depth  bool
}

// itemBuffers holds the GPU resources of one item. Geometry is uploaded
// again only when the item version changes.
type itemBuffers struct {
	version     uint64
	vertex      *wgpu.Buffer
	vertexCount uint32
	index       *wgpu.Buffer
	indexCount  uint32
	uniform     *wgpu.Buffer
	bindGroup   *wgpu.BindGroup
}

func (b *itemBuffers) releaseGeometry() {
	if b.vertex != nil {
		b.vertex.Release()
		b.vertex = nil
	}
	if b.index != nil {
		b.index.Release()
		b.index = nil
	}
	b.vertexCount, b.indexCount = 0, 0
}

func (b *itemBuffers) release() {
	b.releaseGeometry()
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.uniform != nil {
		b.uniform.Release()
		b.uniform = nil
	}
}

type Renderer struct {
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
	Config  *wgpu.SurfaceConfiguration

	Background wgpu.Color

	log       painter.Logger
	compile   func(name, code string) (*wgpu.ShaderModule, error)
	programs  map[string]program
	bindings  *wgpu.BindGroupLayout
	layout    *wgpu.PipelineLayout
	pipelines map[pipelineKey]*wgpu.RenderPipeline
	items     map[uuid.UUID]*itemBuffers

	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	depthWidth   uint32
	depthHeight  uint32
}

// NewRenderer compiles every program in shaders.Programs for the configured
// surface. Pipelines are built on first use. Further programs can be added
// with AddProgram.
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, surface *wgpu.Surface, config *wgpu.SurfaceConfiguration, log painter.Logger) (*Renderer, error) {
	if log == nil {
		log = painter.NewNopLogger()
	}
	r := &Renderer{
		Device:     device,
		Queue:      device.GetQueue(),
		Surface:    surface,
		Adapter:    adapter,
		Config:     config,
		Background: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		log:        log,
		programs:   make(map[string]program),
		pipelines:  make(map[pipelineKey]*wgpu.RenderPipeline),
		items:      make(map[uuid.UUID]*itemBuffers),
	}

	r.compile = func(name, code string) (*wgpu.ShaderModule, error) {
		return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          name,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
		})
	}
	if err := r.addBuiltins(); err != nil {
		return nil, err
	}

	var err error
	r.bindings, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ItemUniformsBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: UniformBufferSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	r.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindings},
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("gpu renderer ready with programs %v", shaders.Names())
	return r, nil
}

func (r *Renderer) addBuiltins() error {
	for _, name := range shaders.Names() {
		if err := r.addProgram(name, shaders.Programs[name], !shaders.IsOverlay(name)); err != nil {
			return err
		}
	}
	return nil
}

// AddProgram compiles a WGSL program and registers it under name, after
// which items naming it resolve. The program must declare vs_main and
// fs_main and read the per-item uniform block at group 0, binding 0. Added
// programs are depth tested.
func (r *Renderer) AddProgram(name, wgsl string) error {
	if err := r.addProgram(name, wgsl, true); err != nil {
		return err
	}
	r.log.Infof("added program %q", name)
	return nil
}

func (r *Renderer) addProgram(name, wgsl string, depth bool) error {
	if name == "" {
		return errors.New("program name is empty")
	}
	if wgsl == "" {
		return fmt.Errorf("program %q: empty source", name)
	}
	if _, ok := r.programs[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateProgram, name)
	}
	module, err := r.compile(name, wgsl)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	r.programs[name] = program{module: module, depth: depth}
	return nil
}

func (r *Renderer) HasShader(name string) bool {
	_, ok := r.programs[name]
	return ok
}

// depthTested reports whether cmd is drawn with depth testing. Overlays
// are always drawn on top.
func (r *Renderer) depthTested(cmd painter.DrawCommand) bool {
	prog, ok := r.programs[cmd.Shader]
	return ok && prog.depth && !cmd.Overlay
}

// depthState returns the depth configuration of a pipeline. Every pipeline
// shares the pass's depth attachment, so untested pipelines still declare
// its format.
func depthState(tested bool) *wgpu.DepthStencilState {
	ds := &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: false,
		DepthCompare:      wgpu.CompareFunctionAlways,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilReadMask:   0xFFFFFFFF,
		StencilWriteMask:  0xFFFFFFFF,
	}
	if tested {
		ds.DepthWriteEnabled = true
		ds.DepthCompare = wgpu.CompareFunctionLess
	}
	return ds
}

func (r *Renderer) pipeline(shader string, topology wgpu.PrimitiveTopology, depth bool) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{shader: shader, topology: topology, depth: depth}
	if p, ok := r.pipelines[key]; ok {
		return p, nil
	}
	prog, ok := r.programs[shader]
	if !ok {
		return nil, fmt.Errorf("%w: %q", painter.ErrShaderNotFound, shader)
	}
	module := prog.module

	prim := wgpu.PrimitiveState{
		Topology:  topology,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	if isStrip(topology) {
		prim.StripIndexFormat = wgpu.IndexFormatUint32
	}

	p, err := r.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  shader,
		Layout: r.layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(vertexSize),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         12,
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.Config.Format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive:    prim,
		DepthStencil: depthState(depth),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s/%v: %w", shader, topology, err)
	}
	r.pipelines[key] = p
	return p, nil
}

// ensureDepth (re)creates the depth attachment when the surface size
// changed.
func (r *Renderer) ensureDepth() error {
	w, h := r.Config.Width, r.Config.Height
	if r.depthView != nil && r.depthWidth == w && r.depthHeight == h {
		return nil
	}
	r.releaseDepth()
	texture, err := r.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth",
		Size: wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	r.depthTexture, r.depthView = texture, view
	r.depthWidth, r.depthHeight = w, h
	r.log.Debugf("depth buffer %dx%d", w, h)
	return nil
}

func (r *Renderer) releaseDepth() {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	r.depthWidth, r.depthHeight = 0, 0
}

// BeginFrame acquires the next surface texture and opens a render pass that
// clears it to the background color and the depth buffer to the far plane.
func (r *Renderer) BeginFrame() error {
	if err := r.ensureDepth(); err != nil {
		return err
	}
	texture, err := r.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("create view: %w", err)
	}
	encoder, err := r.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		texture.Release()
		return fmt.Errorf("create command encoder: %w", err)
	}

	r.texture, r.view, r.encoder = texture, view, encoder
	r.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.Background,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	return nil
}

// EndFrame closes the render pass, submits it and presents the texture.
func (r *Renderer) EndFrame() error {
	if r.pass == nil {
		return errNoFrame
	}
	defer r.endFrame()

	if err := r.pass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}
	cmd, err := r.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	r.Queue.Submit(cmd)
	r.Surface.Present()
	return nil
}

func (r *Renderer) endFrame() {
	r.pass.Release()
	r.encoder.Release()
	r.view.Release()
	r.texture.Release()
	r.pass, r.encoder, r.view, r.texture = nil, nil, nil, nil
}

// Draw records one item into the open render pass.
func (r *Renderer) Draw(cmd painter.DrawCommand) error {
	if r.pass == nil {
		return errNoFrame
	}
	if len(cmd.Vertices) == 0 {
		return nil
	}
	topology := Topology(cmd.Primitive)
	pipeline, err := r.pipeline(cmd.Shader, topology, r.depthTested(cmd))
	if err != nil {
		return err
	}
	buf, err := r.buffers(cmd)
	if err != nil {
		return err
	}

	u := PackUniforms(cmd)
	if err := r.Queue.WriteBuffer(buf.uniform, 0, unsafe.Slice((*byte)(unsafe.Pointer(&u)), unsafe.Sizeof(u))); err != nil {
		return fmt.Errorf("write uniforms: %w", err)
	}

	r.pass.SetPipeline(pipeline)
	r.pass.SetBindGroup(0, buf.bindGroup, nil)
	r.pass.SetVertexBuffer(0, buf.vertex, 0, wgpu.WholeSize)
	if buf.index != nil {
		r.pass.SetIndexBuffer(buf.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		r.pass.DrawIndexed(buf.indexCount, 1, 0, 0, 0)
		return nil
	}
	r.pass.Draw(buf.vertexCount, 1, 0, 0)
	return nil
}

// buffers returns the item's resources, uploading its geometry when the
// item is new or its version changed since the last upload.
func (r *Renderer) buffers(cmd painter.DrawCommand) (*itemBuffers, error) {
	buf, ok := r.items[cmd.ItemID]
	if !ok {
		uniform, err := r.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: cmd.Label + " uniforms",
			Size:  UniformBufferSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create uniform buffer: %w", err)
		}
		bg, err := r.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  cmd.Label,
			Layout: r.bindings,
			Entries: []wgpu.BindGroupEntry{
				{
					Binding: 0,
					Buffer:  uniform,
					Size:    UniformBufferSize,
				},
			},
		})
		if err != nil {
			uniform.Release()
			return nil, fmt.Errorf("create bind group: %w", err)
		}
		buf = &itemBuffers{uniform: uniform, bindGroup: bg}
		r.items[cmd.ItemID] = buf
	}
	if buf.vertex != nil && buf.version == cmd.Version {
		return buf, nil
	}

	buf.releaseGeometry()
	vSize := uint64(len(cmd.Vertices)) * uint64(vertexSize)
	vertex, err := r.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: cmd.Label + " vertices",
		Size:  vSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	buf.vertex = vertex
	buf.vertexCount = uint32(len(cmd.Vertices))
	if err := r.Queue.WriteBuffer(vertex, 0, unsafe.Slice((*byte)(unsafe.Pointer(&cmd.Vertices[0])), vSize)); err != nil {
		return nil, fmt.Errorf("write vertices: %w", err)
	}

	if indices := drawIndices(cmd); len(indices) > 0 {
		iSize := uint64(len(indices)) * 4
		index, err := r.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: cmd.Label + " indices",
			Size:  iSize,
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create index buffer: %w", err)
		}
		buf.index = index
		buf.indexCount = uint32(len(indices))
		if err := r.Queue.WriteBuffer(index, 0, unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), iSize)); err != nil {
			return nil, fmt.Errorf("write indices: %w", err)
		}
	}

	buf.version = cmd.Version
	r.log.Debugf("uploaded %q v%d: %d vertices, %d indices", cmd.Label, cmd.Version, buf.vertexCount, buf.indexCount)
	return buf, nil
}

// ReleaseItem frees the buffers of a removed item.
func (r *Renderer) ReleaseItem(id uuid.UUID) {
	if buf, ok := r.items[id]; ok {
		buf.release()
		delete(r.items, id)
	}
}

// Resize reconfigures the surface. Zero sizes, as sent while minimized, are
// ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Config.Width = uint32(width)
	r.Config.Height = uint32(height)
	r.Surface.Configure(r.Adapter, r.Device, r.Config)
	r.releaseDepth()
}

// Release frees every GPU resource the renderer owns.
func (r *Renderer) Release() {
	for id := range r.items {
		r.ReleaseItem(id)
	}
	for k, p := range r.pipelines {
		p.Release()
		delete(r.pipelines, k)
	}
	for k, prog := range r.programs {
		if prog.module != nil {
			prog.module.Release()
		}
		delete(r.programs, k)
	}
	r.releaseDepth()
	if r.layout != nil {
		r.layout.Release()
		r.layout = nil
	}
	if r.bindings != nil {
		r.bindings.Release()
		r.bindings = nil
	}
}

var (
	_ painter.FrameSink    = (*Renderer)(nil)
	_ painter.ItemReleaser = (*Renderer)(nil)
)

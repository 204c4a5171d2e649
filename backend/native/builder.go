package native

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pipecache"
	"github.com/gogpu/pipecache/descriptor"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// Builder creates pipelines on a HAL device.
type Builder struct {
	device hal.Device
}

// NewBuilder returns a Builder for device.
func NewBuilder(device hal.Device) *Builder {
	return &Builder{device: device}
}

// SetLogger sets the package logger. pipecache.New calls it.
func (b *Builder) SetLogger(l *slog.Logger) { setLogger(l) }

// BuildGraphicsPipeline implements pipecache.Builder.
func (b *Builder) BuildGraphicsPipeline(desc *pipecache.GraphicsDescriptor) (pipecache.PipelineObject, error) {
	if b.device == nil {
		return nil, ErrNilDevice
	}

	var vs, fs *pipecache.BackendProgram
	for _, prog := range desc.Programs {
		switch prog.Stage {
		case shader.StageVertex:
			vs = prog
		case shader.StageFragment:
			fs = prog
		default:
			return nil, fmt.Errorf("%w: %s", ErrStageUnsupported, prog.Stage)
		}
	}
	if vs == nil {
		return nil, ErrNoVertexStage
	}

	p := &Pipeline{device: b.device, label: desc.Label}
	if err := b.createLayouts(p, desc.Layout); err != nil {
		p.Destroy()
		return nil, err
	}

	vsModule, err := b.createModule(p, vs)
	if err != nil {
		p.Destroy()
		return nil, err
	}

	fixed := desc.State
	rpDesc := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     vsModule,
			EntryPoint: vs.EntryPoint,
			Buffers:    fixed.VertexInput.BufferLayouts(),
		},
		DepthStencil: depthStencil(&fixed.DepthStencil),
		Primitive: gputypes.PrimitiveState{
			Topology:  fixed.InputAssembly.Topology,
			FrontFace: fixed.Rasterizer.FrontFace,
			CullMode:  fixed.Rasterizer.CullMode(),
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount(fixed),
			Mask:  0xFFFFFFFF,
		},
	}
	if fs != nil {
		fsModule, err := b.createModule(p, fs)
		if err != nil {
			p.Destroy()
			return nil, err
		}
		rpDesc.Fragment = &hal.FragmentState{
			Module:     fsModule,
			EntryPoint: fs.EntryPoint,
			Targets:    fixed.ColorBlending.ColorTargets(),
		}
	}

	p.render, err = b.device.CreateRenderPipeline(rpDesc)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create render pipeline %q: %w", desc.Label, err)
	}
	slogger().Debug("native: render pipeline created",
		"label", desc.Label,
		"fragment", fs != nil,
	)
	return p, nil
}

// BuildComputePipeline implements pipecache.Builder.
func (b *Builder) BuildComputePipeline(desc *pipecache.ComputeDescriptor) (pipecache.PipelineObject, error) {
	if b.device == nil {
		return nil, ErrNilDevice
	}
	if desc.Program.Stage != shader.StageCompute {
		return nil, fmt.Errorf("%w: %s", ErrStageUnsupported, desc.Program.Stage)
	}

	p := &Pipeline{device: b.device, label: desc.Label}
	if err := b.createLayouts(p, desc.Layout); err != nil {
		p.Destroy()
		return nil, err
	}
	module, err := b.createModule(p, desc.Program)
	if err != nil {
		p.Destroy()
		return nil, err
	}

	p.compute, err = b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Compute: hal.ComputeState{
			Module:     module,
			EntryPoint: desc.Program.EntryPoint,
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create compute pipeline %q: %w", desc.Label, err)
	}
	slogger().Debug("native: compute pipeline created",
		"label", desc.Label,
		"workgroup", desc.WorkgroupSize,
	)
	return p, nil
}

// createLayouts creates the bind group 0 layout and the pipeline layout.
func (b *Builder) createLayouts(p *Pipeline, layout *descriptor.Layout) error {
	var bindings []descriptor.Binding
	if layout != nil {
		bindings = layout.Bindings
	}

	bgl, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.label + "_bind_layout",
		Entries: descriptor.LayoutEntries(bindings),
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	p.bindLayout = bgl

	pl, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bgl},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.layout = pl
	return nil
}

func (b *Builder) createModule(p *Pipeline, prog *pipecache.BackendProgram) (hal.ShaderModule, error) {
	if len(prog.Code) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCode, prog.Stage)
	}
	m, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: p.label + "_" + prog.Stage.String(),
		Source: hal.ShaderSource{
			SPIRV: prog.Code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", prog.Stage, err)
	}
	p.modules = append(p.modules, m)
	return m, nil
}

// depthStencil returns the depth state, or nil when no depth attachment is
// bound. Stencil is left at keep/always.
func depthStencil(ds *state.DepthStencil) *hal.DepthStencilState {
	if ds.Format == gputypes.TextureFormatUndefined {
		return nil
	}
	compare := gputypes.CompareFunctionAlways
	if ds.DepthTestEnable {
		compare = ds.DepthCompare
	}
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            ds.Format,
		DepthWriteEnabled: ds.DepthTestEnable && ds.DepthWriteEnable,
		DepthCompare:      compare,
		StencilFront:      keep,
		StencilBack:       keep,
	}
}

func sampleCount(s *state.FixedState) uint32 {
	if s.SampleCount == 0 {
		return 1
	}
	return s.SampleCount
}

package pipecache

import (
	"fmt"

	"github.com/gogpu/pipecache/descriptor"
	"github.com/gogpu/pipecache/shader"
)

// graphicsSpecialization derives the specialization shared by every stage
// of a graphics pipeline.
func graphicsSpecialization(key *GraphicsKey) (Specialization, error) {
	var spec Specialization
	fs := &key.FixedState
	if fs.InputAssembly.IsPoints() {
		size := fs.InputAssembly.PointSize()
		if size == 0 {
			return spec, ErrPointSizeZero
		}
		spec.PointSize = size
	}
	spec.AttributeTypes = fs.VertexInput.AttributeTypes()
	spec.NdcMinusOneToOne = fs.Rasterizer.NdcMinusOneToOne
	return spec, nil
}

// stagePrograms resolves the enabled program slots of key into pipeline
// stages. VertexA and VertexB share the vertex stage: when both are enabled
// VertexA becomes the prelude of VertexB.
func (c *Cache) stagePrograms(key *GraphicsKey) ([]StageProgram, error) {
	var stages []StageProgram
	for p := range shader.Program(shader.MaxProgram) {
		if !key.Enabled(p) {
			continue
		}
		u, err := c.resolve(p.Stage(), key.Shaders[p], false, c.opts.graphicsMainOffset)
		if err != nil {
			return nil, fmt.Errorf("%s program: %w", p, err)
		}
		if p == shader.ProgramVertexB && len(stages) > 0 && stages[0].Stage == shader.StageVertex {
			stages[0].Prelude = stages[0].Unit
			stages[0].Unit = u
			continue
		}
		stages = append(stages, StageProgram{Stage: p.Stage(), Unit: u})
	}
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	return stages, nil
}

// generate converts one stage and lays out its bindings starting at
// spec.BaseBinding.
func (c *Cache) generate(sp *StageProgram, spec Specialization, bindings []descriptor.Binding) (*BackendProgram, []descriptor.Binding, uint32, error) {
	prog, err := c.cfg.Generator.Generate(sp, spec)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %s stage: %w", ErrGenerate, sp.Stage, err)
	}

	next := spec.BaseBinding
	for _, e := range sp.Manifests() {
		bindings, next, err = descriptor.FillLayout(bindings, sp.Stage, e, next)
		if err != nil {
			return nil, nil, 0, err
		}
	}
	if want := spec.BaseBinding + sp.NumBindings(); next != want {
		return nil, nil, 0, fmt.Errorf("%w: %s stage ends at %d, want %d",
			descriptor.ErrBindingCountMismatch, sp.Stage, next, want)
	}

	Logger().Debug("decompile stage",
		"stage", sp.Stage.String(),
		"base_binding", spec.BaseBinding,
		"bindings", next-spec.BaseBinding,
		"prelude", sp.Prelude != nil)
	return prog, bindings, next, nil
}

// templateStages flattens stage manifests for update template derivation.
func templateStages(stages []StageProgram) []descriptor.StageEntries {
	var out []descriptor.StageEntries
	for i := range stages {
		for _, e := range stages[i].Manifests() {
			out = append(out, descriptor.StageEntries{Stage: stages[i].Stage, Entries: e})
		}
	}
	return out
}

func (c *Cache) buildGraphics(key *GraphicsKey, hash uint64) (*GraphicsPipeline, error) {
	p, err := c.decompileGraphics(key, hash)
	if err != nil {
		logBuildFailure("graphics", hash, err)
		return nil, err
	}
	return p, nil
}

func (c *Cache) decompileGraphics(key *GraphicsKey, hash uint64) (*GraphicsPipeline, error) {
	spec, err := graphicsSpecialization(key)
	if err != nil {
		return nil, err
	}
	stages, err := c.stagePrograms(key)
	if err != nil {
		return nil, err
	}

	var (
		programs []*BackendProgram
		bindings []descriptor.Binding
		flags    shader.StageFlags
	)
	for i := range stages {
		var prog *BackendProgram
		prog, bindings, spec.BaseBinding, err = c.generate(&stages[i], spec, bindings)
		if err != nil {
			return nil, err
		}
		programs = append(programs, prog)
		flags |= stages[i].Stage.Flag()
	}

	tmpl, size := descriptor.BuildTemplate(templateStages(stages), 0)
	layout := &descriptor.Layout{Bindings: bindings, Template: tmpl, UpdateSize: size}

	obj, err := c.cfg.Builder.BuildGraphicsPipeline(&GraphicsDescriptor{
		Label:    fmt.Sprintf("graphics_%016x", hash),
		Programs: programs,
		Layout:   layout,
		State:    &key.FixedState,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: graphics 0x%016X: %w", ErrBuild, hash, err)
	}
	return &GraphicsPipeline{
		key:    *key,
		hash:   hash,
		stages: flags,
		layout: layout,
		object: obj,
	}, nil
}

func (c *Cache) buildCompute(key *ComputeKey, hash uint64) (*ComputePipeline, error) {
	p, err := c.decompileCompute(key, hash)
	if err != nil {
		logBuildFailure("compute", hash, err)
		return nil, err
	}
	return p, nil
}

func (c *Cache) decompileCompute(key *ComputeKey, hash uint64) (*ComputePipeline, error) {
	u, err := c.resolve(shader.StageCompute, key.Shader, true, c.opts.computeMainOffset)
	if err != nil {
		return nil, err
	}

	spec := Specialization{
		WorkgroupSize:    key.WorkgroupSize,
		SharedMemorySize: key.SharedMemorySize,
	}
	sp := StageProgram{Stage: shader.StageCompute, Unit: u}
	prog, bindings, _, err := c.generate(&sp, spec, nil)
	if err != nil {
		return nil, err
	}

	tmpl, size := descriptor.BuildTemplate(templateStages([]StageProgram{sp}), 0)
	layout := &descriptor.Layout{Bindings: bindings, Template: tmpl, UpdateSize: size}

	obj, err := c.cfg.Builder.BuildComputePipeline(&ComputeDescriptor{
		Label:            fmt.Sprintf("compute_%016x", hash),
		Program:          prog,
		Layout:           layout,
		WorkgroupSize:    key.WorkgroupSize,
		SharedMemorySize: key.SharedMemorySize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: compute 0x%016X: %w", ErrBuild, hash, err)
	}
	return &ComputePipeline{
		key:    *key,
		hash:   hash,
		layout: layout,
		object: obj,
	}, nil
}

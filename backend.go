package pipecache

import (
	"github.com/gogpu/pipecache/descriptor"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// Specialization holds the constants baked into a backend program when a
// pipeline is built.
type Specialization struct {
	// BaseBinding is the first descriptor binding of the stage.
	BaseBinding uint32

	// PointSize is the fixed point size. Zero unless the topology is a
	// point list.
	PointSize float32

	AttributeTypes   [state.NumVertexAttributes]state.AttributeType
	NdcMinusOneToOne bool

	// Compute only.
	WorkgroupSize    [3]uint32
	SharedMemorySize uint32
}

// StageProgram is the translated program of one pipeline stage.
type StageProgram struct {
	Stage shader.Stage
	Unit  *shader.Unit
	// Prelude is the VertexA program executed in front of Unit when both
	// vertex program slots are enabled. It is nil otherwise.
	Prelude *shader.Unit
}

// Manifests returns the resource manifests of the stage in binding order.
func (p *StageProgram) Manifests() []*shader.Entries {
	if p.Prelude != nil {
		return []*shader.Entries{p.Prelude.Entries(), p.Unit.Entries()}
	}
	return []*shader.Entries{p.Unit.Entries()}
}

// NumBindings returns the number of binding slots of the stage.
func (p *StageProgram) NumBindings() uint32 {
	var n uint32
	for _, e := range p.Manifests() {
		n += e.NumBindings()
	}
	return n
}

// BackendProgram is a stage program in the form the backend consumes.
type BackendProgram struct {
	Stage      shader.Stage
	EntryPoint string
	// Code holds SPIR-V words.
	Code []uint32
}

// Generator converts translated programs into backend programs.
type Generator interface {
	Generate(prog *StageProgram, spec Specialization) (*BackendProgram, error)
}

// PipelineObject is a compiled backend pipeline.
type PipelineObject interface {
	// Destroy releases the pipeline and every object built for it.
	Destroy()
}

// GraphicsDescriptor is everything needed to build a graphics pipeline.
type GraphicsDescriptor struct {
	Label    string
	Programs []*BackendProgram
	Layout   *descriptor.Layout
	State    *state.FixedState
}

// ComputeDescriptor is everything needed to build a compute pipeline.
type ComputeDescriptor struct {
	Label            string
	Program          *BackendProgram
	Layout           *descriptor.Layout
	WorkgroupSize    [3]uint32
	SharedMemorySize uint32
}

// Builder constructs pipeline objects.
type Builder interface {
	BuildGraphicsPipeline(desc *GraphicsDescriptor) (PipelineObject, error)
	BuildComputePipeline(desc *ComputeDescriptor) (PipelineObject, error)
}

// Queue is the GPU work queue pipelines are used on.
type Queue interface {
	// Finish blocks until every previously submitted command has completed.
	Finish() error
}

package pipecache

import (
	"github.com/gogpu/pipecache/descriptor"
	"github.com/gogpu/pipecache/shader"
)

// GraphicsPipeline is a cached graphics pipeline. It is owned by the Cache
// and stays valid until the entry is invalidated or the cache destroyed.
type GraphicsPipeline struct {
	key    GraphicsKey
	hash   uint64
	stages shader.StageFlags
	layout *descriptor.Layout
	object PipelineObject
}

// Key returns the key the pipeline was built for.
func (p *GraphicsPipeline) Key() *GraphicsKey { return &p.key }

// Hash returns the hash of the pipeline key.
func (p *GraphicsPipeline) Hash() uint64 { return p.hash }

// Stages returns the stages present in the pipeline.
func (p *GraphicsPipeline) Stages() shader.StageFlags { return p.stages }

// Layout returns the descriptor layout and update template.
func (p *GraphicsPipeline) Layout() *descriptor.Layout { return p.layout }

// Object returns the backend pipeline.
func (p *GraphicsPipeline) Object() PipelineObject { return p.object }

// ComputePipeline is a cached compute pipeline.
type ComputePipeline struct {
	key    ComputeKey
	hash   uint64
	layout *descriptor.Layout
	object PipelineObject
}

// Key returns the key the pipeline was built for.
func (p *ComputePipeline) Key() *ComputeKey { return &p.key }

// Hash returns the hash of the pipeline key.
func (p *ComputePipeline) Hash() uint64 { return p.hash }

// Layout returns the descriptor layout and update template.
func (p *ComputePipeline) Layout() *descriptor.Layout { return p.layout }

// Object returns the backend pipeline.
func (p *ComputePipeline) Object() PipelineObject { return p.object }

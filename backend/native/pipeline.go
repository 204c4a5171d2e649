package native

import "github.com/gogpu/wgpu/hal"

// Pipeline owns a HAL pipeline and every object created to build it.
type Pipeline struct {
	device     hal.Device
	label      string
	render     hal.RenderPipeline
	compute    hal.ComputePipeline
	layout     hal.PipelineLayout
	bindLayout hal.BindGroupLayout
	modules    []hal.ShaderModule
}

// Label returns the debug label the pipeline was built with.
func (p *Pipeline) Label() string { return p.label }

// RenderPipeline returns the HAL render pipeline, or nil for compute
// pipelines.
func (p *Pipeline) RenderPipeline() hal.RenderPipeline { return p.render }

// ComputePipeline returns the HAL compute pipeline, or nil for graphics
// pipelines.
func (p *Pipeline) ComputePipeline() hal.ComputePipeline { return p.compute }

// BindGroupLayout returns the layout of bind group 0.
func (p *Pipeline) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// Destroy releases the pipeline, its layouts and its shader modules, in that
// order. It is safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.render != nil {
		p.device.DestroyRenderPipeline(p.render)
		p.render = nil
	}
	if p.compute != nil {
		p.device.DestroyComputePipeline(p.compute)
		p.compute = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	for _, m := range p.modules {
		p.device.DestroyShaderModule(m)
	}
	p.modules = nil
	p.device = nil
}

package native

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/pipecache/shader"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

const computeWGSL = `
@group(0) @binding(0) var<storage, read_write> data: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = data[id.x] * 2u;
}
`

const renderWGSL = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;

@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return tint;
}
`

// lowerWGSL parses and lowers WGSL source into a naga module.
func lowerWGSL(t *testing.T, src string) *ir.Module {
	t.Helper()
	ast, err := naga.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := naga.Lower(ast)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	return m
}

// newUnit wraps module in a translated unit for stage.
func newUnit(t *testing.T, stage shader.Stage, module *ir.Module) *shader.Unit {
	t.Helper()
	tr := shader.TranslatorFunc(func([]uint64, uint32, shader.CompilerSettings, *shader.UsageRegistry) (*shader.IR, error) {
		return &shader.IR{Module: module}, nil
	})
	u, err := shader.NewUnit(shader.UnitParams{
		Stage:   stage,
		GPUAddr: 0x1000,
		Code:    make([]uint64, 4),
	}, tr, shader.DefaultCompilerSettings(), nil)
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	return u
}

// fakeSPIRV is a minimal SPIR-V header; the noop device does not parse it.
var fakeSPIRV = []uint32{0x07230203, 0x00010300, 0, 1, 0}

package main

import (
	"github.com/gogpu/pipecache/internal/wgsltr"
	"github.com/gogpu/pipecache/shader"
)

// Program ids understood by the demo library.
const (
	idVertex uint64 = iota + 1
	idFragmentRed
	idFragmentTint
	idCompute
)

const vertexWGSL = `
@group(0) @binding(0) var<uniform> viewport: vec4<f32>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn main(@location(0) pos: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos * viewport.xy + viewport.zw, 0.0, 1.0);
    out.uv = pos;
    return out;
}
`

const fragmentRedWGSL = `
@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, uv.x * 0.0, 0.0, 1.0);
}
`

const fragmentTintWGSL = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return tint * vec4<f32>(uv, 1.0, 1.0);
}
`

const computeWGSL = `
@group(0) @binding(0) var<storage, read_write> counters: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    counters[id.x] = counters[id.x] + 1u;
}
`

func newLibrary() *wgsltr.Library {
	cb := func(size uint32) map[uint32]shader.ConstBuffer {
		return map[uint32]shader.ConstBuffer{0: {MaxOffset: size}}
	}
	lib := wgsltr.New()
	lib.Add(idVertex, wgsltr.Program{Source: vertexWGSL, ConstBuffers: cb(16)})
	lib.Add(idFragmentRed, wgsltr.Program{Source: fragmentRedWGSL})
	lib.Add(idFragmentTint, wgsltr.Program{Source: fragmentTintWGSL, ConstBuffers: cb(16)})
	lib.Add(idCompute, wgsltr.Program{
		Source: computeWGSL,
		GlobalMemory: map[shader.GlobalMemoryBase]shader.GlobalMemoryUsage{
			{CbufIndex: 0, CbufOffset: 0x110}: {Read: true, Written: true},
		},
	})
	return lib
}

// nextFragment flips between the two fragment programs.
func nextFragment(id uint64) uint64 {
	if id == idFragmentRed {
		return idFragmentTint
	}
	return idFragmentRed
}

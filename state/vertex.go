// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import "github.com/gogpu/gputypes"

// Vertex input limits of the emulated hardware.
const (
	NumVertexAttributes = 32
	NumVertexBindings   = 32
)

// AttributeType is the component type a vertex attribute is read as.
type AttributeType uint8

const (
	AttributeFloat AttributeType = iota
	AttributeSignedInt
	AttributeUnsignedInt
	AttributeSignedNorm
	AttributeUnsignedNorm
	AttributeSignedScaled
	AttributeUnsignedScaled
)

// Attribute is one vertex attribute slot.
type Attribute struct {
	Enabled bool
	Binding uint32
	Type    AttributeType
	Format  gputypes.VertexFormat
	Offset  uint32
}

// VertexBinding is one vertex buffer slot.
type VertexBinding struct {
	Enabled  bool
	Stride   uint32
	StepMode gputypes.VertexStepMode
	// Divisor is the instance step rate. Zero means every instance.
	Divisor uint32
}

// VertexInput is the vertex fetch configuration.
type VertexInput struct {
	Bindings   [NumVertexBindings]VertexBinding
	Attributes [NumVertexAttributes]Attribute
}

// AttributeTypes returns the component type of every attribute slot.
// Disabled slots report AttributeFloat.
func (v *VertexInput) AttributeTypes() [NumVertexAttributes]AttributeType {
	var out [NumVertexAttributes]AttributeType
	for i, a := range v.Attributes {
		if a.Enabled {
			out[i] = a.Type
		}
	}
	return out
}

// BufferLayouts converts the enabled bindings into vertex buffer layouts
// with their attributes. Shader locations are attribute slot indices.
func (v *VertexInput) BufferLayouts() []gputypes.VertexBufferLayout {
	var out []gputypes.VertexBufferLayout
	for bi, b := range v.Bindings {
		if !b.Enabled {
			continue
		}
		layout := gputypes.VertexBufferLayout{
			ArrayStride: uint64(b.Stride),
			StepMode:    b.StepMode,
		}
		for ai, a := range v.Attributes {
			//nolint:gosec // G115: bi < NumVertexBindings
			if !a.Enabled || a.Binding != uint32(bi) {
				continue
			}
			layout.Attributes = append(layout.Attributes, gputypes.VertexAttribute{
				Format:         a.Format,
				Offset:         uint64(a.Offset),
				ShaderLocation: uint32(ai), //nolint:gosec // G115: ai < NumVertexAttributes
			})
		}
		out = append(out, layout)
	}
	return out
}

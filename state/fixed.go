// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"math"

	"github.com/gogpu/gputypes"
)

// NumRenderTargets is the number of color attachments.
const NumRenderTargets = 8

// InputAssembly selects how vertices are assembled into primitives.
type InputAssembly struct {
	Topology         gputypes.PrimitiveTopology
	PrimitiveRestart bool
	// PointSizeBits holds the IEEE 754 bits of the fixed point size used
	// when Topology is a point list. Keeping the bits makes a NaN size
	// compare equal to itself.
	PointSizeBits uint32
}

// PointSize returns the fixed point size.
func (a *InputAssembly) PointSize() float32 {
	return math.Float32frombits(a.PointSizeBits)
}

// SetPointSize stores size as its bit pattern.
func (a *InputAssembly) SetPointSize(size float32) {
	a.PointSizeBits = math.Float32bits(size)
}

// IsPoints reports whether the topology rasterizes points.
func (a *InputAssembly) IsPoints() bool {
	return a.Topology == gputypes.PrimitiveTopologyPointList
}

// Rasterizer is the rasterization state.
type Rasterizer struct {
	CullEnable      bool
	CullFace        gputypes.CullMode
	FrontFace       gputypes.FrontFace
	DepthBiasEnable bool
	DepthClamp      bool
	// NdcMinusOneToOne is set when clip space depth spans [-1, 1] instead
	// of [0, 1].
	NdcMinusOneToOne bool
}

// CullMode returns the effective cull mode.
func (r *Rasterizer) CullMode() gputypes.CullMode {
	if !r.CullEnable {
		return gputypes.CullModeNone
	}
	return r.CullFace
}

// DepthStencil is the depth test state.
type DepthStencil struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompare     gputypes.CompareFunction
	Format           gputypes.TextureFormat
}

// BlendComponent is the blend equation of the color or alpha channel.
type BlendComponent struct {
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
	Operation gputypes.BlendOperation
}

// BlendAttachment is the blend state of one color attachment.
type BlendAttachment struct {
	Enable    bool
	Color     BlendComponent
	Alpha     BlendComponent
	WriteMask gputypes.ColorWriteMask
	Format    gputypes.TextureFormat
}

// Blend converts the attachment state, returning nil when blending is
// disabled.
func (b *BlendAttachment) Blend() *gputypes.BlendState {
	if !b.Enable {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: b.Color.SrcFactor,
			DstFactor: b.Color.DstFactor,
			Operation: b.Color.Operation,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: b.Alpha.SrcFactor,
			DstFactor: b.Alpha.DstFactor,
			Operation: b.Alpha.Operation,
		},
	}
}

// ColorBlending is the blend state of every color attachment.
type ColorBlending struct {
	AttachmentsCount uint32
	Attachments      [NumRenderTargets]BlendAttachment
}

// ColorTargets converts the active attachments.
func (c *ColorBlending) ColorTargets() []gputypes.ColorTargetState {
	n := min(int(c.AttachmentsCount), NumRenderTargets)
	out := make([]gputypes.ColorTargetState, n)
	for i := range n {
		a := &c.Attachments[i]
		out[i] = gputypes.ColorTargetState{
			Format:    a.Format,
			Blend:     a.Blend(),
			WriteMask: a.WriteMask,
		}
	}
	return out
}

// FixedState is the complete fixed-function state of a draw.
type FixedState struct {
	VertexInput   VertexInput
	InputAssembly InputAssembly
	Rasterizer    Rasterizer
	DepthStencil  DepthStencil
	ColorBlending ColorBlending
	SampleCount   uint32
}

// Default returns a state for single-sampled triangle lists drawn into one
// RGBA8 target without blending or depth.
func Default() FixedState {
	var s FixedState
	s.InputAssembly.Topology = gputypes.PrimitiveTopologyTriangleList
	s.Rasterizer.FrontFace = gputypes.FrontFaceCCW
	s.Rasterizer.CullFace = gputypes.CullModeBack
	s.DepthStencil.DepthCompare = gputypes.CompareFunctionAlways
	s.DepthStencil.Format = gputypes.TextureFormatUndefined
	s.ColorBlending.AttachmentsCount = 1
	s.ColorBlending.Attachments[0] = BlendAttachment{
		Color:     BlendComponent{gputypes.BlendFactorOne, gputypes.BlendFactorZero, gputypes.BlendOperationAdd},
		Alpha:     BlendComponent{gputypes.BlendFactorOne, gputypes.BlendFactorZero, gputypes.BlendOperationAdd},
		WriteMask: gputypes.ColorWriteMaskAll,
		Format:    gputypes.TextureFormatRGBA8Unorm,
	}
	s.SampleCount = 1
	return s
}

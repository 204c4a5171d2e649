// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"hash"

	"github.com/gogpu/pipecache/internal/fnvhash"
)

// Hash returns an FNV-1a hash of every field of s.
func (s *FixedState) Hash() uint64 {
	h := fnvhash.New()
	s.WriteHash(h)
	return h.Sum64()
}

// WriteHash writes every field of s into h.
func (s *FixedState) WriteHash(h hash.Hash64) {
	for i := range s.VertexInput.Bindings {
		b := &s.VertexInput.Bindings[i]
		fnvhash.Bool(h, b.Enabled)
		fnvhash.Uint32(h, b.Stride)
		fnvhash.Uint32(h, uint32(b.StepMode))
		fnvhash.Uint32(h, b.Divisor)
	}
	for i := range s.VertexInput.Attributes {
		a := &s.VertexInput.Attributes[i]
		fnvhash.Bool(h, a.Enabled)
		fnvhash.Uint32(h, a.Binding)
		fnvhash.Uint32(h, uint32(a.Type))
		fnvhash.Uint32(h, uint32(a.Format))
		fnvhash.Uint32(h, a.Offset)
	}

	fnvhash.Uint32(h, uint32(s.InputAssembly.Topology))
	fnvhash.Bool(h, s.InputAssembly.PrimitiveRestart)
	fnvhash.Uint32(h, s.InputAssembly.PointSizeBits)

	r := &s.Rasterizer
	fnvhash.Bool(h, r.CullEnable)
	fnvhash.Uint32(h, uint32(r.CullFace))
	fnvhash.Uint32(h, uint32(r.FrontFace))
	fnvhash.Bool(h, r.DepthBiasEnable)
	fnvhash.Bool(h, r.DepthClamp)
	fnvhash.Bool(h, r.NdcMinusOneToOne)

	d := &s.DepthStencil
	fnvhash.Bool(h, d.DepthTestEnable)
	fnvhash.Bool(h, d.DepthWriteEnable)
	fnvhash.Uint32(h, uint32(d.DepthCompare))
	fnvhash.Uint32(h, uint32(d.Format))

	fnvhash.Uint32(h, s.ColorBlending.AttachmentsCount)
	for i := range s.ColorBlending.Attachments {
		a := &s.ColorBlending.Attachments[i]
		fnvhash.Bool(h, a.Enable)
		writeBlendComponent(h, a.Color)
		writeBlendComponent(h, a.Alpha)
		fnvhash.Uint32(h, uint32(a.WriteMask))
		fnvhash.Uint32(h, uint32(a.Format))
	}

	fnvhash.Uint32(h, s.SampleCount)
}

func writeBlendComponent(h hash.Hash64, c BlendComponent) {
	fnvhash.Uint32(h, uint32(c.SrcFactor))
	fnvhash.Uint32(h, uint32(c.DstFactor))
	fnvhash.Uint32(h, uint32(c.Operation))
}

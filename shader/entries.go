// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"cmp"
	"slices"
)

// ConstBufferEntry is a constant buffer binding of a program.
type ConstBufferEntry struct {
	Index uint32
	ConstBuffer
}

// GlobalBufferEntry is a storage buffer binding of a program.
type GlobalBufferEntry struct {
	CbufIndex  uint32
	CbufOffset uint32
	Written    bool
}

// SamplerEntry is a texel buffer or combined image sampler binding.
type SamplerEntry struct {
	Sampler
}

// Size returns the number of array elements the binding holds.
func (s SamplerEntry) Size() uint32 {
	if s.Count == 0 {
		return 1
	}
	return s.Count
}

// ImageEntry is a storage image binding.
type ImageEntry struct {
	Image
}

// Entries is the resource manifest of a program. Every list is ordered and
// contributes one binding slot per element.
type Entries struct {
	ConstBuffers  []ConstBufferEntry
	GlobalBuffers []GlobalBufferEntry
	TexelBuffers  []SamplerEntry
	Samplers      []SamplerEntry
	Images        []ImageEntry
}

// NumBindings returns the number of binding slots the manifest needs.
func (e *Entries) NumBindings() uint32 {
	//nolint:gosec // G115: resource counts are bounded by hardware limits
	return uint32(len(e.ConstBuffers) + len(e.GlobalBuffers) + len(e.TexelBuffers) +
		len(e.Samplers) + len(e.Images))
}

// NumElements returns the number of descriptors the manifest needs once
// arrayed samplers are expanded.
func (e *Entries) NumElements() uint32 {
	//nolint:gosec // G115: resource counts are bounded by hardware limits
	n := uint32(len(e.ConstBuffers) + len(e.GlobalBuffers) + len(e.TexelBuffers) + len(e.Images))
	for _, s := range e.Samplers {
		n += s.Size()
	}
	return n
}

// GenerateEntries derives the resource manifest of a translated program.
// Constant buffers are ordered by index and global memory by its constant
// buffer slot; samplers keep translator order and are split into texel
// buffers and combined image samplers.
func GenerateEntries(prog *IR) Entries {
	var e Entries

	for index, cb := range prog.ConstBuffers {
		e.ConstBuffers = append(e.ConstBuffers, ConstBufferEntry{Index: index, ConstBuffer: cb})
	}
	slices.SortFunc(e.ConstBuffers, func(a, b ConstBufferEntry) int {
		return cmp.Compare(a.Index, b.Index)
	})

	for base, usage := range prog.GlobalMemory {
		e.GlobalBuffers = append(e.GlobalBuffers, GlobalBufferEntry{
			CbufIndex:  base.CbufIndex,
			CbufOffset: base.CbufOffset,
			Written:    usage.Written,
		})
	}
	slices.SortFunc(e.GlobalBuffers, func(a, b GlobalBufferEntry) int {
		if c := cmp.Compare(a.CbufIndex, b.CbufIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.CbufOffset, b.CbufOffset)
	})

	for _, s := range prog.Samplers {
		if s.IsBuffer {
			e.TexelBuffers = append(e.TexelBuffers, SamplerEntry{Sampler: s})
		} else {
			e.Samplers = append(e.Samplers, SamplerEntry{Sampler: s})
		}
	}
	for _, img := range prog.Images {
		e.Images = append(e.Images, ImageEntry{Image: img})
	}
	return e
}

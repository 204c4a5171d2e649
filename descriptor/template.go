// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import "github.com/gogpu/pipecache/shader"

// UpdateEntrySize is the size in bytes of one UpdateEntry in an update
// payload.
const UpdateEntrySize = 24

// TemplateEntry describes how a run of descriptors is read from an update
// payload.
type TemplateEntry struct {
	Binding      uint32
	ArrayElement uint32
	Count        uint32
	Type         Type
	// Offset is the byte offset of the first descriptor in the payload.
	Offset uint64
	Stride uint64
}

// FillTemplate appends the template entries of one manifest to dst. binding
// and offset are the next binding index and payload byte offset; the
// advanced values are returned.
func FillTemplate(dst []TemplateEntry, e *shader.Entries, binding uint32, offset uint64) ([]TemplateEntry, uint32, uint64) {
	//nolint:gosec // G115: resource counts are bounded by hardware limits
	dst, binding, offset = addGrouped(dst, UniformBuffer, uint32(len(e.ConstBuffers)), binding, offset)
	//nolint:gosec // G115: resource counts are bounded by hardware limits
	dst, binding, offset = addGrouped(dst, StorageBuffer, uint32(len(e.GlobalBuffers)), binding, offset)

	// Texel buffers are written one element at a time. Grouped texel buffer
	// updates crash some drivers.
	for range e.TexelBuffers {
		dst = append(dst, TemplateEntry{
			Binding: binding,
			Count:   1,
			Type:    UniformTexelBuffer,
			Offset:  offset,
			Stride:  UpdateEntrySize,
		})
		binding++
		offset += UpdateEntrySize
	}

	for _, s := range e.Samplers {
		n := s.Size()
		dst = append(dst, TemplateEntry{
			Binding: binding,
			Count:   n,
			Type:    CombinedImageSampler,
			Offset:  offset,
			Stride:  UpdateEntrySize,
		})
		binding++
		offset += uint64(n) * UpdateEntrySize
	}

	//nolint:gosec // G115: resource counts are bounded by hardware limits
	dst, binding, offset = addGrouped(dst, StorageImage, uint32(len(e.Images)), binding, offset)
	return dst, binding, offset
}

// addGrouped writes count descriptors of type t as a single entry.
func addGrouped(dst []TemplateEntry, t Type, count, binding uint32, offset uint64) ([]TemplateEntry, uint32, uint64) {
	if count > 0 {
		dst = append(dst, TemplateEntry{
			Binding: binding,
			Count:   count,
			Type:    t,
			Offset:  offset,
			Stride:  UpdateEntrySize,
		})
	}
	return dst, binding + count, offset + uint64(count)*UpdateEntrySize
}

// BuildTemplate derives the update template of stages starting at
// baseBinding and returns it with the payload size in bytes.
func BuildTemplate(stages []StageEntries, baseBinding uint32) ([]TemplateEntry, uint64) {
	var tmpl []TemplateEntry
	binding := baseBinding
	var offset uint64
	for _, s := range stages {
		tmpl, binding, offset = FillTemplate(tmpl, s.Entries, binding, offset)
	}
	return tmpl, offset
}

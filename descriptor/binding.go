// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pipecache/shader"
)

// Type is the kind of resource a binding holds.
type Type uint8

const (
	UniformBuffer Type = iota
	StorageBuffer
	UniformTexelBuffer
	CombinedImageSampler
	StorageImage
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case UniformBuffer:
		return "uniform_buffer"
	case StorageBuffer:
		return "storage_buffer"
	case UniformTexelBuffer:
		return "uniform_texel_buffer"
	case CombinedImageSampler:
		return "combined_image_sampler"
	case StorageImage:
		return "storage_image"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Binding is one slot of a descriptor binding layout.
type Binding struct {
	Binding uint32
	Type    Type
	// Count is the number of array elements in the slot.
	Count  uint32
	Stages shader.StageFlags
}

// LayoutEntry converts the binding into a bind group layout entry.
//
// Texel buffers have no direct equivalent and are exposed as read-only
// storage buffers. Tessellation and geometry visibility bits are dropped.
func (b Binding) LayoutEntry() gputypes.BindGroupLayoutEntry {
	entry := gputypes.BindGroupLayoutEntry{Binding: b.Binding}
	if b.Stages.Has(shader.FlagVertex) {
		entry.Visibility |= gputypes.ShaderStageVertex
	}
	if b.Stages.Has(shader.FlagFragment) {
		entry.Visibility |= gputypes.ShaderStageFragment
	}
	if b.Stages.Has(shader.FlagCompute) {
		entry.Visibility |= gputypes.ShaderStageCompute
	}

	switch b.Type {
	case UniformBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case StorageBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	case UniformTexelBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
	case CombinedImageSampler:
		entry.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case StorageImage:
		entry.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessReadWrite,
			Format:        gputypes.TextureFormatRGBA8Unorm,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	}
	return entry
}

// LayoutEntries converts a binding layout into bind group layout entries.
func LayoutEntries(bindings []Binding) []gputypes.BindGroupLayoutEntry {
	out := make([]gputypes.BindGroupLayoutEntry, len(bindings))
	for i, b := range bindings {
		out[i] = b.LayoutEntry()
	}
	return out
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/gogpu/naga/ir"

// IR is the translated form of a guest program.
//
// Module holds the program body for backend code generators. The remaining
// fields declare every resource the program touches; translators number the
// module's resource bindings from zero in manifest order (constant buffers,
// storage buffers, texel buffers, samplers, images).
type IR struct {
	Module     *ir.Module
	MainOffset uint32

	ConstBuffers map[uint32]ConstBuffer
	GlobalMemory map[GlobalMemoryBase]GlobalMemoryUsage
	Samplers     []Sampler
	Images       []Image
}

// ConstBuffer describes how a program reads one constant buffer.
type ConstBuffer struct {
	// MaxOffset is one past the highest byte read.
	MaxOffset uint32
	// Indirect is set when the buffer is indexed with a register.
	Indirect bool
}

// Size returns the number of bytes of the buffer the program can observe.
func (c ConstBuffer) Size() uint32 {
	if c.Indirect {
		return MaxConstBufferSize
	}
	return c.MaxOffset
}

// MaxConstBufferSize is the largest constant buffer the hardware exposes.
const MaxConstBufferSize = 0x10000

// GlobalMemoryBase is the constant buffer slot holding a global memory
// pointer.
type GlobalMemoryBase struct {
	CbufIndex  uint32
	CbufOffset uint32
}

// GlobalMemoryUsage records how a global memory region is accessed.
type GlobalMemoryUsage struct {
	Read    bool
	Written bool
}

// TextureType is the dimensionality of a sampled or storage image.
type TextureType uint8

const (
	Texture1D TextureType = iota
	Texture2D
	Texture3D
	TextureCube
)

// Sampler is a texture sampled by the program. Buffer samplers are texel
// buffers.
type Sampler struct {
	Index    uint32
	Offset   uint32
	Buffer   uint32
	Type     TextureType
	IsArray  bool
	IsShadow bool
	IsBuffer bool
	Bindless bool
	// Count is the number of array elements for indexed samplers, zero
	// otherwise.
	Count uint32
}

// Image is a storage image accessed by the program.
type Image struct {
	Index     uint32
	Offset    uint32
	Type      TextureType
	IsWritten bool
	IsRead    bool
	IsAtomic  bool
}

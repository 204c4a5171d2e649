// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "encoding/binary"

// GPUAddr is an address in the emulated GPU virtual address space.
type GPUAddr uint64

// CPUAddr is an address in the emulated CPU address space backing GPU memory.
type CPUAddr uint64

// HostPtr identifies the host memory backing a GPU address. Zero means the
// address has no backing memory.
type HostPtr uintptr

// MaxProgramLength is the number of 64-bit words read for every program
// before its length is estimated.
const MaxProgramLength = 0x1000

// MemoryManager is the emulated GPU memory as seen by the shader loader.
type MemoryManager interface {
	// HostPointer returns the host memory backing addr, or zero.
	HostPointer(addr GPUAddr) HostPtr

	// ReadBlock fills dst with the bytes stored at addr.
	ReadBlock(addr GPUAddr, dst []byte)

	// GPUToCPUAddress translates addr into the CPU address space.
	GPUToCPUAddress(addr GPUAddr) (CPUAddr, bool)
}

// ReadProgram reads maxWords instruction words at addr and trims them to the
// estimated program length. A zero host pointer yields a zero-filled buffer
// instead of a memory read.
func ReadProgram(mem MemoryManager, addr GPUAddr, host HostPtr, isCompute bool, maxWords int) []uint64 {
	code := make([]uint64, maxWords)
	if host != 0 {
		raw := make([]byte, maxWords*8)
		mem.ReadBlock(addr, raw)
		for i := range code {
			code[i] = binary.LittleEndian.Uint64(raw[i*8:])
		}
	}
	return code[:EstimateLength(code, isCompute)]
}

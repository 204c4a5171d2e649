// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package guestmem is a small emulated GPU address space used by the demo
// and tests. Regions are mapped at a GPU address and backed by host memory
// at a CPU address; writes are reported to an optional hook so callers can
// invalidate cached programs.
package guestmem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/pipecache/shader"
)

// ErrUnmapped is returned when writing outside every mapped region.
var ErrUnmapped = errors.New("guestmem: address not mapped")

// hostStride separates the synthetic host pointers of regions.
const hostStride = 1 << 32

type region struct {
	gpu  shader.GPUAddr
	cpu  shader.CPUAddr
	host shader.HostPtr
	data []byte
}

func (r *region) contains(addr shader.GPUAddr) bool {
	return addr >= r.gpu && uint64(addr-r.gpu) < uint64(len(r.data))
}

// Memory is a set of mapped regions. It implements shader.MemoryManager.
type Memory struct {
	regions []*region
	onWrite func(addr shader.CPUAddr, size uint64)
}

// New creates an empty address space.
func New() *Memory {
	return &Memory{}
}

// Map backs size bytes at gpu with zeroed host memory at cpu.
func (m *Memory) Map(gpu shader.GPUAddr, cpu shader.CPUAddr, size uint64) {
	r := &region{
		gpu:  gpu,
		cpu:  cpu,
		host: shader.HostPtr(uint64(len(m.regions)+1) * hostStride),
		data: make([]byte, size),
	}
	m.regions = append(m.regions, r)
	slices.SortFunc(m.regions, func(a, b *region) int {
		switch {
		case a.gpu < b.gpu:
			return -1
		case a.gpu > b.gpu:
			return 1
		}
		return 0
	})
}

// OnWrite installs a hook called with the CPU range of every write.
func (m *Memory) OnWrite(fn func(addr shader.CPUAddr, size uint64)) {
	m.onWrite = fn
}

func (m *Memory) find(addr shader.GPUAddr) *region {
	i, found := slices.BinarySearchFunc(m.regions, addr, func(r *region, a shader.GPUAddr) int {
		switch {
		case r.gpu < a:
			return -1
		case r.gpu > a:
			return 1
		}
		return 0
	})
	if found {
		return m.regions[i]
	}
	if i > 0 && m.regions[i-1].contains(addr) {
		return m.regions[i-1]
	}
	return nil
}

// HostPointer implements shader.MemoryManager.
func (m *Memory) HostPointer(addr shader.GPUAddr) shader.HostPtr {
	r := m.find(addr)
	if r == nil {
		return 0
	}
	return r.host + shader.HostPtr(addr-r.gpu)
}

// GPUToCPUAddress implements shader.MemoryManager.
func (m *Memory) GPUToCPUAddress(addr shader.GPUAddr) (shader.CPUAddr, bool) {
	r := m.find(addr)
	if r == nil {
		return 0, false
	}
	return r.cpu + shader.CPUAddr(addr-r.gpu), true
}

// ReadBlock implements shader.MemoryManager. Bytes outside the region
// holding addr read as zero.
func (m *Memory) ReadBlock(addr shader.GPUAddr, dst []byte) {
	r := m.find(addr)
	if r == nil {
		clear(dst)
		return
	}
	n := copy(dst, r.data[addr-r.gpu:])
	clear(dst[n:])
}

// Write stores data at addr and reports the written CPU range.
func (m *Memory) Write(addr shader.GPUAddr, data []byte) error {
	r := m.find(addr)
	if r == nil || uint64(addr-r.gpu)+uint64(len(data)) > uint64(len(r.data)) {
		return fmt.Errorf("%w: 0x%X+%d", ErrUnmapped, uint64(addr), len(data))
	}
	copy(r.data[addr-r.gpu:], data)
	if m.onWrite != nil {
		m.onWrite(r.cpu+shader.CPUAddr(addr-r.gpu), uint64(len(data)))
	}
	return nil
}

// WriteWords stores little-endian 64-bit words at addr.
func (m *Memory) WriteWords(addr shader.GPUAddr, words []uint64) error {
	buf := make([]byte, len(words)*8)
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return m.Write(addr, buf)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"encoding/binary"
	"errors"
)

// fakeMemory is a flat guest memory starting at GPU address base.
type fakeMemory struct {
	base  GPUAddr
	data  []byte
	reads int
}

func newFakeMemory(base GPUAddr, words []uint64) *fakeMemory {
	data := make([]byte, MaxProgramLength*8*2)
	for i, w := range words {
		binary.LittleEndian.PutUint64(data[i*8:], w)
	}
	return &fakeMemory{base: base, data: data}
}

func (m *fakeMemory) HostPointer(addr GPUAddr) HostPtr {
	if addr < m.base || int(addr-m.base) >= len(m.data) {
		return 0
	}
	return HostPtr(0x7000_0000 + uint64(addr))
}

func (m *fakeMemory) ReadBlock(addr GPUAddr, dst []byte) {
	m.reads++
	off := int(addr - m.base)
	copy(dst, m.data[off:])
}

func (m *fakeMemory) GPUToCPUAddress(addr GPUAddr) (CPUAddr, bool) {
	if m.HostPointer(addr) == 0 {
		return 0, false
	}
	return CPUAddr(addr + 0x100000), true
}

// fakeTranslator returns a fixed IR and counts calls.
type fakeTranslator struct {
	ir       *IR
	err      error
	calls    int
	lastCode []uint64
	lastMain uint32
	readKey  *ConstBufferKey
}

func (f *fakeTranslator) Translate(code []uint64, mainOffset uint32, _ CompilerSettings, usage *UsageRegistry) (*IR, error) {
	f.calls++
	f.lastCode = code
	f.lastMain = mainOffset
	if f.readKey != nil {
		usage.ObtainKey(f.readKey.Index, f.readKey.Offset)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.ir == nil {
		return &IR{}, nil
	}
	return f.ir, nil
}

// fakeEngine serves constant buffer words from a map.
type fakeEngine struct {
	words map[ConstBufferKey]uint32
	bound uint32
}

func (e *fakeEngine) AccessConstBuffer32(_ Stage, index, offset uint32) uint32 {
	return e.words[ConstBufferKey{Index: index, Offset: offset}]
}

func (e *fakeEngine) BoundBuffer() uint32 { return e.bound }

var errBadProgram = errors.New("bad program")

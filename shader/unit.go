// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// Unit is one translated guest program. Units never change after
// construction; a program rewritten in guest memory becomes a new unit once
// the old one is unregistered.
type Unit struct {
	stage   Stage
	gpuAddr GPUAddr
	cpuAddr CPUAddr
	host    HostPtr

	code    []uint64
	ir      *IR
	usage   *UsageRegistry
	entries Entries

	handle Handle
}

// UnitParams identifies a program and carries its code.
type UnitParams struct {
	Stage      Stage
	GPUAddr    GPUAddr
	CPUAddr    CPUAddr
	Host       HostPtr
	Code       []uint64
	MainOffset uint32
}

// NewUnit translates p.Code and builds a unit from the result.
func NewUnit(p UnitParams, tr Translator, settings CompilerSettings, engine ConstBufferEngine) (*Unit, error) {
	usage := NewUsageRegistry(p.Stage, engine)
	prog, err := tr.Translate(p.Code, p.MainOffset, settings, usage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s program at 0x%X: %w", ErrTranslate, p.Stage, uint64(p.GPUAddr), err)
	}
	if prog == nil {
		return nil, fmt.Errorf("%s program at 0x%X: %w", p.Stage, uint64(p.GPUAddr), ErrNilIR)
	}
	return &Unit{
		stage:   p.Stage,
		gpuAddr: p.GPUAddr,
		cpuAddr: p.CPUAddr,
		host:    p.Host,
		code:    p.Code,
		ir:      prog,
		usage:   usage,
		entries: GenerateEntries(prog),
	}, nil
}

// Stage returns the stage the unit was translated for.
func (u *Unit) Stage() Stage { return u.stage }

// GPUAddr returns the GPU address of the program.
func (u *Unit) GPUAddr() GPUAddr { return u.gpuAddr }

// CPUAddr returns the CPU address backing the program.
func (u *Unit) CPUAddr() CPUAddr { return u.cpuAddr }

// HostPtr returns the host memory identity the unit is registered under.
func (u *Unit) HostPtr() HostPtr { return u.host }

// Code returns the trimmed instruction words. Callers must not modify them.
func (u *Unit) Code() []uint64 { return u.code }

// SizeInBytes returns the size of the trimmed program.
func (u *Unit) SizeInBytes() uint64 { return uint64(len(u.code)) * 8 }

// IR returns the translated program.
func (u *Unit) IR() *IR { return u.ir }

// Usage returns the constant buffer words the translation depended on.
func (u *Unit) Usage() *UsageRegistry { return u.usage }

// Entries returns the resource manifest.
func (u *Unit) Entries() *Entries { return &u.entries }

// Handle returns the registry handle, or InvalidHandle when unregistered.
func (u *Unit) Handle() Handle { return u.handle }

// Overlaps reports whether the program's CPU range intersects
// [addr, addr+size).
func (u *Unit) Overlaps(addr CPUAddr, size uint64) bool {
	start := uint64(u.cpuAddr)
	end := start + u.SizeInBytes()
	return uint64(addr) < end && start < uint64(addr)+size
}

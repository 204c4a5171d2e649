// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgsltr is a shader.Translator backed by WGSL sources.
//
// Guest programs handed to a Library are stub encodings produced by Words:
// the first instruction word is a program id that selects a registered WGSL
// source. The source is lowered with naga once per id. The package stands in
// for a real guest ISA decompiler in the demo and in backend tests.
package wgsltr

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/pipecache/shader"
)

// ErrUnknownProgram is returned for a program id with no registered source.
var ErrUnknownProgram = errors.New("wgsltr: unknown program id")

// Guest end marker and a neutral instruction word used by Words.
const (
	selfBranch uint64 = 0xE2400FFFFF07000F
	filler     uint64 = 0x5C98078000870001
)

// Program is a WGSL source and the resource manifest of its bindings. The
// manifest must number bindings the way the source does, starting at zero
// in manifest order.
type Program struct {
	Source       string
	ConstBuffers map[uint32]shader.ConstBuffer
	GlobalMemory map[shader.GlobalMemoryBase]shader.GlobalMemoryUsage
	Samplers     []shader.Sampler
	Images       []shader.Image
}

// Library maps program ids to WGSL programs.
type Library struct {
	progs   map[uint64]Program
	modules map[uint64]*ir.Module
	lowered int
}

// New returns an empty Library.
func New() *Library {
	return &Library{
		progs:   make(map[uint64]Program),
		modules: make(map[uint64]*ir.Module),
	}
}

// Add registers p under id, replacing any previous program.
func (l *Library) Add(id uint64, p Program) {
	l.progs[id] = p
	delete(l.modules, id)
}

// Lowered returns how many WGSL sources have been lowered so far.
func (l *Library) Lowered() int { return l.lowered }

// Translate implements shader.Translator.
func (l *Library) Translate(code []uint64, mainOffset uint32, _ shader.CompilerSettings, _ *shader.UsageRegistry) (*shader.IR, error) {
	idx := int(mainOffset) + 1
	if idx >= len(code) {
		return nil, fmt.Errorf("%w: program shorter than its header", ErrUnknownProgram)
	}
	id := code[idx]
	p, ok := l.progs[id]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%X", ErrUnknownProgram, id)
	}

	module, ok := l.modules[id]
	if !ok {
		ast, err := naga.Parse(p.Source)
		if err != nil {
			return nil, fmt.Errorf("wgsltr: program 0x%X: %w", id, err)
		}
		module, err = naga.Lower(ast)
		if err != nil {
			return nil, fmt.Errorf("wgsltr: program 0x%X: %w", id, err)
		}
		l.modules[id] = module
		l.lowered++
	}

	return &shader.IR{
		Module:       module,
		MainOffset:   mainOffset,
		ConstBuffers: p.ConstBuffers,
		GlobalMemory: p.GlobalMemory,
		Samplers:     p.Samplers,
		Images:       p.Images,
	}, nil
}

// Words encodes a stub guest program selecting id. Graphics programs carry
// the fixed-size header in front of the first instruction.
func Words(id uint64, compute bool) []uint64 {
	start := shader.GraphicsMainOffset
	if compute {
		start = 0
	}
	words := make([]uint64, start+4)
	words[start+1] = id
	words[start+2] = filler
	words[start+3] = selfBranch
	return words
}

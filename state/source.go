// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import "github.com/gogpu/pipecache/shader"

// Source is the emulated 3D engine register state as seen by the pipeline
// cache.
type Source interface {
	// ProgramEnabled reports whether program slot p is enabled.
	ProgramEnabled(p shader.Program) bool
	// ProgramAddress returns the GPU address of the program in slot p.
	ProgramAddress(p shader.Program) shader.GPUAddr
	// FixedState returns the fixed-function state of the next draw.
	FixedState() FixedState
}

// Static is a Source with fixed contents. It is used by tools and tests
// that replay a captured draw.
type Static struct {
	Enabled   [shader.MaxProgram]bool
	Addresses [shader.MaxProgram]shader.GPUAddr
	State     FixedState
}

// ProgramEnabled implements Source.
func (s *Static) ProgramEnabled(p shader.Program) bool {
	return s.Enabled[p]
}

// ProgramAddress implements Source.
func (s *Static) ProgramAddress(p shader.Program) shader.GPUAddr {
	return s.Addresses[p]
}

// FixedState implements Source.
func (s *Static) FixedState() FixedState {
	return s.State
}

// Bind enables program slot p at addr.
func (s *Static) Bind(p shader.Program, addr shader.GPUAddr) {
	s.Enabled[p] = true
	s.Addresses[p] = addr
}

// Unbind disables program slot p.
func (s *Static) Unbind(p shader.Program) {
	s.Enabled[p] = false
	s.Addresses[p] = 0
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// LoaderConfig wires a Loader to its collaborators.
type LoaderConfig struct {
	Memory     MemoryManager
	Translator Translator
	Registry   *Registry

	// Engines returns the constant buffer engine for a stage. Optional.
	Engines func(Stage) ConstBufferEngine

	Settings CompilerSettings

	// MaxProgramLength is the number of words read per program. Zero means
	// MaxProgramLength.
	MaxProgramLength int
}

// Loader creates units on first reference and serves them from the
// registry afterwards.
type Loader struct {
	cfg LoaderConfig
}

// NewLoader creates a loader.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.MaxProgramLength <= 0 {
		cfg.MaxProgramLength = MaxProgramLength
	}
	return &Loader{cfg: cfg}
}

// Settings returns the compiler settings passed to the translator.
func (l *Loader) Settings() CompilerSettings {
	return l.cfg.Settings
}

// GetOrCreate returns the unit registered for host, translating and
// registering the program at gpuAddr when there is none.
func (l *Loader) GetOrCreate(stage Stage, gpuAddr GPUAddr, cpuAddr CPUAddr, host HostPtr,
	isCompute bool, mainOffset uint32) (*Unit, error) {
	if u, ok := l.cfg.Registry.TryGet(host); ok {
		return u, nil
	}

	code := ReadProgram(l.cfg.Memory, gpuAddr, host, isCompute, l.cfg.MaxProgramLength)

	var engine ConstBufferEngine
	if l.cfg.Engines != nil {
		engine = l.cfg.Engines(stage)
	}
	u, err := NewUnit(UnitParams{
		Stage:      stage,
		GPUAddr:    gpuAddr,
		CPUAddr:    cpuAddr,
		Host:       host,
		Code:       code,
		MainOffset: mainOffset,
	}, l.cfg.Translator, l.cfg.Settings, engine)
	if err != nil {
		return nil, err
	}
	if _, err := l.cfg.Registry.Register(u); err != nil {
		return nil, fmt.Errorf("register %s program: %w", stage, err)
	}
	return u, nil
}

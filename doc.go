// Package pipecache caches compiled GPU pipelines for an emulated graphics
// engine.
//
// # Overview
//
// The emulated GPU executes guest shader bytecode and fixed-function draw
// state. pipecache turns the currently bound programs and state into native
// pipeline objects, compiling each distinct combination once and serving it
// from a map afterwards. When guest memory holding a program is rewritten
// every pipeline using it is dropped.
//
// # Quick Start
//
//	c, err := pipecache.New(pipecache.Config{
//		Memory:     mem,      // shader.MemoryManager
//		State:      regs,     // state.Source
//		Translator: tr,       // shader.Translator
//		Generator:  native.NewGenerator(),
//		Builder:    builder,  // native.NewBuilder(device)
//		Queue:      queue,    // native.NewQueue(device, q)
//	})
//
//	key := c.CurrentGraphicsKey()
//	p, err := c.GetGraphicsPipeline(&key)
//
//	// Guest wrote to [addr, addr+size):
//	c.InvalidateRegion(addr, size)
//
// # Architecture
//
// The module is organized into:
//   - shader: program length estimation, translation units, registry
//   - descriptor: binding layouts and update templates
//   - state: fixed-function state and the register state source
//   - pipecache: pipeline keys, the cache and invalidation
//   - backend/native: hal pipeline builder, GPU queue, SPIR-V generator
//
// # Invalidation
//
// The cache is the shader registry's unregister observer. Before the first
// pipeline is destroyed for an unregistered program the GPU queue is
// finished, exactly once per event. If the wait fails nothing is removed
// and the program stays registered.
package pipecache

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)

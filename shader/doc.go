// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader owns guest shader programs: reading them out of emulated
// GPU memory, estimating where they end, translating them and keeping the
// resulting units in an address-indexed registry.
//
// # Units
//
// A [Unit] is immutable after construction. It carries the trimmed
// instruction words, the translated [IR], the resource manifest ([Entries])
// derived from the IR and the [UsageRegistry] the translator filled while
// reading constant buffers.
//
// # Registry
//
// [Registry] stores units in an arena addressed by [Handle] and resolves host
// pointers to handles through a separate map. Unregistering a unit notifies
// the registered [UnregisterObserver] before the unit is removed, which lets a
// pipeline cache purge everything that references it first.
//
//	reg := shader.NewRegistry()
//	loader := shader.NewLoader(shader.LoaderConfig{
//	    Memory:     mem,
//	    Translator: tr,
//	    Registry:   reg,
//	})
//	unit, err := loader.GetOrCreate(shader.StageVertex, gpuAddr, cpuAddr, host, false, 10)
package shader

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"cmp"
	"slices"
)

// ConstBufferEngine exposes the constant buffers bound to an engine. The 3D
// engine serves graphics stages and the compute engine serves compute.
type ConstBufferEngine interface {
	// AccessConstBuffer32 reads the 32-bit word at offset of the constant
	// buffer bound at index for stage.
	AccessConstBuffer32(stage Stage, index, offset uint32) uint32

	// BoundBuffer returns the constant buffer index used for bound textures.
	BoundBuffer() uint32
}

// ConstBufferKey addresses one 32-bit word of a constant buffer.
type ConstBufferKey struct {
	Index  uint32
	Offset uint32
}

// KeyValue is a constant buffer word observed during translation.
type KeyValue struct {
	ConstBufferKey
	Value uint32
}

// UsageRegistry records the constant buffer words a translator depended on
// while translating one program.
type UsageRegistry struct {
	stage       Stage
	engine      ConstBufferEngine
	boundBuffer uint32
	keys        map[ConstBufferKey]uint32
}

// NewUsageRegistry creates a registry for stage reading through engine.
// A nil engine yields a registry that only serves inserted keys.
func NewUsageRegistry(stage Stage, engine ConstBufferEngine) *UsageRegistry {
	r := &UsageRegistry{
		stage:  stage,
		engine: engine,
		keys:   make(map[ConstBufferKey]uint32),
	}
	if engine != nil {
		r.boundBuffer = engine.BoundBuffer()
	}
	return r
}

// Stage returns the stage the registry belongs to.
func (r *UsageRegistry) Stage() Stage {
	return r.stage
}

// BoundBuffer returns the bound texture constant buffer index.
func (r *UsageRegistry) BoundBuffer() uint32 {
	return r.boundBuffer
}

// ObtainKey returns the word at (index, offset), reading it from the engine
// and remembering it on first use.
func (r *UsageRegistry) ObtainKey(index, offset uint32) (uint32, bool) {
	key := ConstBufferKey{Index: index, Offset: offset}
	if v, ok := r.keys[key]; ok {
		return v, true
	}
	if r.engine == nil {
		return 0, false
	}
	v := r.engine.AccessConstBuffer32(r.stage, index, offset)
	r.keys[key] = v
	return v, true
}

// InsertKey records a known word.
func (r *UsageRegistry) InsertKey(index, offset, value uint32) {
	r.keys[ConstBufferKey{Index: index, Offset: offset}] = value
}

// Keys returns every recorded word ordered by buffer and offset.
func (r *UsageRegistry) Keys() []KeyValue {
	out := make([]KeyValue, 0, len(r.keys))
	for k, v := range r.keys {
		out = append(out, KeyValue{ConstBufferKey: k, Value: v})
	}
	slices.SortFunc(out, func(a, b KeyValue) int {
		if c := cmp.Compare(a.Index, b.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Offset, b.Offset)
	})
	return out
}

// UsedBuffers returns the distinct constant buffer indices referenced.
func (r *UsageRegistry) UsedBuffers() []uint32 {
	var out []uint32
	for k := range r.keys {
		if !slices.Contains(out, k.Index) {
			out = append(out, k.Index)
		}
	}
	slices.Sort(out)
	return out
}

// IsConsistent reports whether every recorded word still holds the same
// value in the engine.
func (r *UsageRegistry) IsConsistent() bool {
	if r.engine == nil {
		return true
	}
	for k, v := range r.keys {
		if r.engine.AccessConstBuffer32(r.stage, k.Index, k.Offset) != v {
			return false
		}
	}
	return true
}

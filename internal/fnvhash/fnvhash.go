// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fnvhash writes fixed-width values into an FNV-1a hash.
package fnvhash

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// New returns a 64-bit FNV-1a hash.
func New() hash.Hash64 {
	return fnv.New64a()
}

// Uint32 writes v in little-endian order.
func Uint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

// Uint64 writes v in little-endian order.
func Uint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

// Bool writes v as a single byte.
func Bool(h hash.Hash64, v bool) {
	if v {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
}

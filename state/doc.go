// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package state describes the fixed-function draw state that takes part in
// graphics pipeline identity.
//
// FixedState is a comparable value: two draws with equal state may share a
// pipeline, and it can be embedded directly in a map key. The few fields
// that shape shader translation (point size, vertex attribute types, clip
// space convention) are read by the pipeline cache for specialization; the
// rest is passed through to the backend.
package state

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package descriptor derives descriptor binding layouts and update templates
// from shader resource manifests.
//
// Every stage of a pipeline contributes its resources in a fixed order:
// constant buffers, storage buffers, texel buffers, combined image samplers
// and storage images. Binding indices continue from one stage to the next so
// that no two stages share a binding.
//
//	bindings, next, err := descriptor.BuildLayout([]descriptor.StageEntries{
//		{Stage: shader.StageVertex, Entries: vs.Entries()},
//		{Stage: shader.StageFragment, Entries: fs.Entries()},
//	}, 0)
//
// The update template mirrors the layout for bulk writes from a flat buffer
// of UpdateEntry values, which an UpdateQueue fills per draw.
package descriptor

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import "errors"

var (
	// ErrBindingCountMismatch is returned when a stage allocated a different
	// number of bindings than its manifest declares.
	ErrBindingCountMismatch = errors.New("descriptor: binding count does not match manifest")

	// ErrPayloadSize is returned when an update payload does not match the
	// size its template expects.
	ErrPayloadSize = errors.New("descriptor: update payload size mismatch")
)

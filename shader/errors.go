// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "errors"

// Shader errors.
var (
	// ErrTranslate wraps every failure reported by a Translator.
	ErrTranslate = errors.New("shader: translation failed")

	// ErrNilIR is returned when a Translator reports success without an IR.
	ErrNilIR = errors.New("shader: translator returned nil IR")

	// ErrAlreadyRegistered is returned when registering a unit whose host
	// pointer already resolves to another unit.
	ErrAlreadyRegistered = errors.New("shader: host pointer already registered")

	// ErrNotRegistered is returned when unregistering a unit the registry
	// does not hold.
	ErrNotRegistered = errors.New("shader: unit not registered")
)

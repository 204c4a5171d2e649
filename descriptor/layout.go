// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import (
	"fmt"

	"github.com/gogpu/pipecache/shader"
)

// StageEntries pairs a stage with its resource manifest.
type StageEntries struct {
	Stage   shader.Stage
	Entries *shader.Entries
}

// FillLayout appends the bindings of one stage to dst starting at binding
// and returns the next free binding index.
func FillLayout(dst []Binding, stage shader.Stage, e *shader.Entries, binding uint32) ([]Binding, uint32, error) {
	base := binding
	flags := stage.Flag()
	add := func(t Type, count uint32) {
		dst = append(dst, Binding{Binding: binding, Type: t, Count: count, Stages: flags})
		binding++
	}

	for range e.ConstBuffers {
		add(UniformBuffer, 1)
	}
	for range e.GlobalBuffers {
		add(StorageBuffer, 1)
	}
	for range e.TexelBuffers {
		add(UniformTexelBuffer, 1)
	}
	for _, s := range e.Samplers {
		add(CombinedImageSampler, s.Size())
	}
	for range e.Images {
		add(StorageImage, 1)
	}

	if got, want := binding-base, e.NumBindings(); got != want {
		return dst, binding, fmt.Errorf("%w: %s stage allocated %d, declares %d",
			ErrBindingCountMismatch, stage, got, want)
	}
	return dst, binding, nil
}

// BuildLayout lays out every stage in order starting at baseBinding. It
// returns the bindings and the next free binding index.
func BuildLayout(stages []StageEntries, baseBinding uint32) ([]Binding, uint32, error) {
	var (
		bindings []Binding
		err      error
	)
	next := baseBinding
	for _, s := range stages {
		bindings, next, err = FillLayout(bindings, s.Stage, s.Entries, next)
		if err != nil {
			return nil, next, err
		}
	}
	return bindings, next, nil
}

// Layout is the descriptor state a pipeline is built with.
type Layout struct {
	Bindings []Binding
	Template []TemplateEntry
	// UpdateSize is the size in bytes of the payload the template reads.
	UpdateSize uint64
}

// Build derives the binding layout and update template of stages.
func Build(stages []StageEntries, baseBinding uint32) (*Layout, uint32, error) {
	bindings, next, err := BuildLayout(stages, baseBinding)
	if err != nil {
		return nil, next, err
	}
	tmpl, size := BuildTemplate(stages, baseBinding)
	return &Layout{Bindings: bindings, Template: tmpl, UpdateSize: size}, next, nil
}

// NumElements returns the number of descriptors the layout holds.
func (l *Layout) NumElements() uint32 {
	var n uint32
	for _, b := range l.Bindings {
		n += b.Count
	}
	return n
}

// Validate checks that q holds exactly the payload the template reads.
func (l *Layout) Validate(q *UpdateQueue) error {
	//nolint:gosec // G115: payload length is bounded by descriptor limits
	got := uint64(len(q.Payload())) * UpdateEntrySize
	if got != l.UpdateSize {
		return fmt.Errorf("%w: %d bytes, template reads %d", ErrPayloadSize, got, l.UpdateSize)
	}
	return nil
}

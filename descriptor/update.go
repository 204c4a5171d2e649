// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

// UpdateEntry is one descriptor in an update payload. Buffers use all three
// words; images store the view in Resource and the sampler in Offset.
type UpdateEntry struct {
	Resource uint64
	Offset   uint64
	Range    uint64
}

// UpdateQueue collects the descriptors of one draw in template order.
type UpdateQueue struct {
	payload []UpdateEntry
}

// NewUpdateQueue creates a queue with room for capacity descriptors.
func NewUpdateQueue(capacity int) *UpdateQueue {
	return &UpdateQueue{payload: make([]UpdateEntry, 0, capacity)}
}

// AddBuffer appends a uniform or storage buffer range.
func (q *UpdateQueue) AddBuffer(buffer, offset, size uint64) {
	q.payload = append(q.payload, UpdateEntry{Resource: buffer, Offset: offset, Range: size})
}

// AddTexelBuffer appends a buffer view.
func (q *UpdateQueue) AddTexelBuffer(view uint64) {
	q.payload = append(q.payload, UpdateEntry{Resource: view})
}

// AddSampledImage appends an image view with its sampler.
func (q *UpdateQueue) AddSampledImage(view, sampler uint64) {
	q.payload = append(q.payload, UpdateEntry{Resource: view, Offset: sampler})
}

// AddImage appends a storage image view.
func (q *UpdateQueue) AddImage(view uint64) {
	q.payload = append(q.payload, UpdateEntry{Resource: view})
}

// Payload returns the queued descriptors. The slice is reused after Reset.
func (q *UpdateQueue) Payload() []UpdateEntry {
	return q.payload
}

// Len returns the number of queued descriptors.
func (q *UpdateQueue) Len() int {
	return len(q.payload)
}

// Reset empties the queue for the next draw.
func (q *UpdateQueue) Reset() {
	q.payload = q.payload[:0]
}

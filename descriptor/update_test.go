// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import "testing"

func TestUpdateQueue(t *testing.T) {
	q := NewUpdateQueue(4)
	q.AddBuffer(10, 64, 128)
	q.AddSampledImage(20, 30)
	q.AddTexelBuffer(40)
	q.AddImage(50)

	want := []UpdateEntry{
		{Resource: 10, Offset: 64, Range: 128},
		{Resource: 20, Offset: 30},
		{Resource: 40},
		{Resource: 50},
	}
	got := q.Payload()
	if len(got) != len(want) {
		t.Fatalf("Len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payload[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	q.Reset()
	if q.Len() != 0 {
		t.Errorf("Len after Reset = %d", q.Len())
	}
	q.AddImage(1)
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

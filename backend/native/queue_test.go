package native

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
)

// idleDevice wraps a device and counts WaitIdle calls.
type idleDevice struct {
	hal.Device
	waits int
	err   error
}

func (d *idleDevice) WaitIdle() error {
	d.waits++
	return d.err
}

func TestQueueFinish(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	q := NewQueue(device, queue)
	for i := 0; i < 3; i++ {
		if err := q.Finish(); err != nil {
			t.Fatalf("Finish #%d: %v", i, err)
		}
	}
}

func TestQueueFinishWaitsIdle(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	errLost := errors.New("device lost")
	tests := []struct {
		name string
		err  error
	}{
		{"idle", nil},
		{"device error", errLost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &idleDevice{Device: device, err: tt.err}
			err := NewQueue(d, queue).Finish()
			if !errors.Is(err, tt.err) {
				t.Errorf("Finish = %v, want %v", err, tt.err)
			}
			if d.waits != 1 {
				t.Errorf("WaitIdle calls = %d, want 1", d.waits)
			}
		})
	}
}

func TestQueueFinishNil(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name string
		q    *Queue
		want error
	}{
		{"nil device", NewQueue(nil, nil), ErrNilDevice},
		{"nil queue", NewQueue(device, nil), ErrNilQueue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.q.Finish(); !errors.Is(err, tt.want) {
				t.Errorf("Finish = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromProviderNil(t *testing.T) {
	if _, _, err := FromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("FromProvider(nil) = %v, want ErrNilDevice", err)
	}
}

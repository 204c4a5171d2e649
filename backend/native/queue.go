package native

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// slowFinish is the wait after which Finish logs a slow queue.
const slowFinish = 5 * time.Second

// Queue drains a HAL device before pipelines are destroyed.
type Queue struct {
	device hal.Device
	queue  hal.Queue
}

// NewQueue returns a Queue for the given device and queue.
func NewQueue(device hal.Device, queue hal.Queue) *Queue {
	return &Queue{device: device, queue: queue}
}

// SetLogger sets the package logger. pipecache.New calls it.
func (q *Queue) SetLogger(l *slog.Logger) { setLogger(l) }

// Finish blocks until all work submitted to the device before the call has
// completed.
func (q *Queue) Finish() error {
	if q.device == nil {
		return ErrNilDevice
	}
	if q.queue == nil {
		return ErrNilQueue
	}

	start := time.Now()
	if err := q.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for device idle: %w", err)
	}
	if elapsed := time.Since(start); elapsed > slowFinish {
		slogger().Warn("native: queue finish is slow", "elapsed", elapsed)
	}
	return nil
}

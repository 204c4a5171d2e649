package native

import (
	"log/slog"
	"sync/atomic"
)

// The package logs at two levels:
//
//   - Debug: "native: render pipeline created", "native: compute pipeline
//     created" (Builder) and "native: spirv generated" (Generator).
//   - Warn: "native: queue finish is slow" (Queue).
//
// Records go nowhere until pipecache.New hands its logger to the Builder,
// Generator and Queue through their SetLogger methods.
var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(slog.New(slog.DiscardHandler))
}

// slogger returns the logger shared by Builder, Generator and Queue.
func slogger() *slog.Logger { return active.Load() }

// setLogger backs the SetLogger methods. A nil logger discards again.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	active.Store(l)
}

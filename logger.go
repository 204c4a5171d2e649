package pipecache

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pipecache. By default pipecache
// produces no log output. Pass nil to restore the silent default.
//
// Caches created after the call hand the logger to collaborators that
// accept one (see backend/native).
//
// Log levels used by pipecache:
//   - [slog.LevelDebug]: per-stage translation details and binding counts
//   - [slog.LevelInfo]: pipeline compiles and invalidations
//   - [slog.LevelWarn]: slow GPU queue waits, teardown errors
//
// Example:
//
//	pipecache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by pipecache.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by collaborators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes l to every collaborator implementing loggerSetter.
func propagateLogger(l *slog.Logger, collaborators ...any) {
	for _, c := range collaborators {
		if ls, ok := c.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

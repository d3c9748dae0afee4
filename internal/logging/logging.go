// Package logging holds the process-wide logger. It is silent until a
// command installs a handler with SetLogger; the raster core never logs.
package logging

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs l for all packages. nil restores silence.
//
// Levels in use:
//   - [slog.LevelDebug]: per-frame timings, canvas rebuilds
//   - [slog.LevelInfo]: written files, resolved configuration
//   - [slog.LevelWarn]: recoverable host problems
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// NewText returns a text logger on w, at debug level when verbose.
func NewText(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the fallback logger used by pipelines that were not
// given an explicit Diagnostics sink. By default, softpipe produces no log
// output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by softpipe:
//   - [slog.LevelDebug]: per-draw summaries, rejected primitives
//   - [slog.LevelError]: draw calls aborted by a caller contract violation
//
// Example:
//
//	softpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current fallback logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Diagnostics receives reports from the pipeline: validation failures at
// error level and per-draw diagnostics at debug level.
//
// A Diagnostics is injected per pipeline with WithDiagnostics. Implementations
// must be safe for concurrent use if the same sink is shared between
// pipelines running on different goroutines.
type Diagnostics interface {
	Report(level slog.Level, msg string, args ...any)
}

// SlogDiagnostics adapts a *slog.Logger to the Diagnostics interface.
// A nil logger discards everything.
func SlogDiagnostics(l *slog.Logger) Diagnostics {
	if l == nil {
		l = newNopLogger()
	}
	return slogDiagnostics{l: l}
}

type slogDiagnostics struct {
	l *slog.Logger
}

func (d slogDiagnostics) Report(level slog.Level, msg string, args ...any) {
	d.l.Log(context.Background(), level, msg, args...)
}

// globalDiagnostics forwards to whatever Logger returns at report time, so
// SetLogger takes effect for pipelines that were built earlier.
type globalDiagnostics struct{}

func (globalDiagnostics) Report(level slog.Level, msg string, args ...any) {
	Logger().Log(context.Background(), level, msg, args...)
}

// Package logging holds the *slog.Logger used by the metrics pipeline.
//
// Nothing is logged unless a logger is installed with SetLogger:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
package logging

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger installs sl as the package logger. Passing nil restores the
// discard logger. Safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = newDiscardLogger()
	}
	logger.Store(sl)
}

// Logger returns the installed logger, or a discard logger if none was set.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := newDiscardLogger()
	logger.CompareAndSwap(nil, l)
	return logger.Load()
}

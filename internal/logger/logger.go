// Package logger holds the process-wide slog logger. Commands configure it
// once with Init; the converter and the CLI log through the package-level
// functions and long-lived components take a child logger from With.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	Init(Options{})
}

// Options configures the logger.
type Options struct {
	Debug  bool      // log pass statistics and fetch details
	Quiet  bool      // errors only; wins over Debug
	JSON   bool      // one JSON object per line
	Output io.Writer // default stderr
}

// Init replaces the logger.
func Init(opts Options) {
	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	current.Store(slog.New(handler))
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

// With returns a child logger carrying args. Later calls to Init do not
// affect it.
func With(args ...any) *slog.Logger {
	return current.Load().With(args...)
}

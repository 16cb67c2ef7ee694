// Package log provides the CLI's global structured logger with
// klog-style verbosity levels.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	logger atomic.Pointer[slog.Logger]
	level  = new(slog.LevelVar)
)

func init() {
	level.Set(slog.LevelWarn)
	logger.Store(slog.New(NewHandler(HandlerOptions{
		Level:  level,
		Format: FormatText,
		Output: os.Stderr,
	})))
}

// Init installs the global logger writing to stderr.
func Init(v int, format string) {
	InitWithOutput(v, format, os.Stderr)
}

// InitWithOutput installs the global logger writing to w.
func InitWithOutput(v int, format string, w io.Writer) {
	SetVerbosity(v)
	l := slog.New(NewHandler(HandlerOptions{
		Level:  level,
		Format: format,
		Output: w,
	}))
	logger.Store(l)
	slog.SetDefault(l)
}

// SetVerbosity changes verbosity at runtime.
func SetVerbosity(v int) {
	level.Set(VerbosityToLevel(v))
}

// Warn logs at warn level (v=1).
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Info logs at info level (v=2).
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Debug logs at debug level (v=3).
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Trace logs at trace level (v=4).
func Trace(msg string, args ...any) {
	logger.Load().Log(context.Background(), LevelTrace, msg, args...)
}

// Component returns a logger tagged with a component name.
func Component(name string) *slog.Logger {
	return logger.Load().With("component", name)
}

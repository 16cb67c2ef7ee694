package log

import (
	"io"
	"log/slog"
	"os"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// HandlerOptions configures the log handler.
type HandlerOptions struct {
	Level     slog.Leveler
	Format    string // FormatText or FormatJSON
	Output    io.Writer
	AddSource bool
}

// NewHandler creates a text or JSON handler. Output defaults to stderr so
// command output on stdout stays clean.
func NewHandler(opts HandlerOptions) slog.Handler {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level,
		AddSource:   opts.AddSource,
		ReplaceAttr: replaceLevelNames,
	}

	if opts.Format == FormatJSON {
		return slog.NewJSONHandler(opts.Output, handlerOpts)
	}
	return slog.NewTextHandler(opts.Output, handlerOpts)
}

func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	}
	return a
}

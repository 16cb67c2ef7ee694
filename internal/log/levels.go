package log

import "log/slog"

// LevelTrace is below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// Verbosity levels accepted by -v.
const (
	VerbosityError = 0 // Errors only
	VerbosityWarn  = 1 // + Warnings
	VerbosityInfo  = 2 // + Info (workspace, root target, summary)
	VerbosityDebug = 3 // + Debug (targets expanded, manifests loaded)
	VerbosityTrace = 4 // + Trace
)

// VerbosityToLevel maps -v=N to a slog level.
func VerbosityToLevel(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelError
	case v == 1:
		return slog.LevelWarn
	case v == 2:
		return slog.LevelInfo
	case v == 3:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// LevelName returns the display name of a level, including TRACE.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}

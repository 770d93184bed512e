// Package logger provides structured logging for the clusterqc tools.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clusterqc-specific context helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stderr with the given level and format.
func New(level, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRun returns a logger tagged with an evaluation run id.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		Logger: l.With("run_id", runID),
	}
}

// WithInput returns a logger tagged with the input table path.
func (l *Logger) WithInput(path string) *Logger {
	return &Logger{
		Logger: l.With("input", path),
	}
}

// WithError returns a logger with error context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.With("error", err.Error()),
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error", "text")
}

// Default returns the default logger.
func Default() *Logger {
	return New("info", "text")
}

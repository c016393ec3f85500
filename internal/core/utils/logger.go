package utils

import (
	"io"
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
}

// NewLogger writes to stderr; stdout is reserved for the wrapped command's output.
func NewLogger(level, format string) *Logger {
	return NewLoggerWithWriter(os.Stderr, level, format)
}

func NewLoggerWithWriter(w io.Writer, level, format string) *Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	return &Logger{Logger: logger}
}

// NopLogger discards everything. Handy in tests and for front-ends started before config is read.
func NopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, "error", "text")
}

func (l *Logger) WithArgument(name string) *Logger {
	return &Logger{Logger: l.Logger.With("argument", name)}
}

func (l *Logger) WithCommand(command string) *Logger {
	return &Logger{Logger: l.Logger.With("command", command)}
}

func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{Logger: l.Logger.With("operation", op)}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With("error", err)}
}

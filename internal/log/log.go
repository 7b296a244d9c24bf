// Package log provides leveled diagnostic logging for yarara, built on
// log/slog. Diagnostics are kept strictly separate from the warning
// stream: warnings go to the selected output formatter, diagnostics go
// to the writer configured here (stderr in the CLI).
//
// The logger is an explicit value threaded through the orchestrator, not
// ambient process state, so tests can capture diagnostic output without
// mutating globals.
package log

import (
	"io"
	"log/slog"
	"strings"
)

// Level represents the minimum severity of diagnostics to emit.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts a Level to the corresponding slog.Level.
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a string into a Level. Unknown strings default to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger wraps slog with an explicit output writer and level.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger writing text diagnostics at or above level to w.
func New(w io.Writer, level Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.ToSlogLevel(),
	})
	return &Logger{slog: slog.New(handler)}
}

// Discard returns a Logger that drops all diagnostics. Used as the
// default when no logger is configured.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// With returns a new Logger with the given attributes added to all entries.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

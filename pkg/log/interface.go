// Package log provides a structured logging interface for lazyml.
//
// The package defines a minimal, slog-compatible Logger interface so
// callers can swap implementations; adapters for log/slog and zerolog
// ship here, plus a buffer-backed TestLogger for assertions. Attribute
// keys for the deferred loader and the backends live in attributes.go.
//
// Example usage:
//
//	logger := log.Default().With(
//	    log.BackendKey, "boost",
//	    log.ImportPathKey, "github.com/YuminosukeSato/lazyml/backends/boost",
//	)
//	logger.Info("loading backend", log.OperationKey, log.OperationLoad)
package log

import (
	"context"
)

// Logger is a structured logging interface compatible with log/slog.
// Fields are alternating key-value pairs, as in slog. With returns a
// child logger that carries its fields into every subsequent record.
type Logger interface {
	// Debug logs detailed diagnostic information, usually disabled
	// outside development.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs a recoverable problem, such as a backend that failed
	// to resolve during warm-up.
	Warn(msg string, fields ...any)

	// Error logs an error condition. An error value passed as a field
	// may have stack trace information extracted by the handler.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given
	// level, so callers can skip building expensive attributes.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values match slog.Level so the two
// can be converted directly.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
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

// LoggerProvider creates and configures loggers. It exists for
// dependency injection: tests install a provider whose loggers write to
// a buffer.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers from this provider.
	SetLevel(level Level)
}

// Package log provides the structured logging interface used across boostcv.
//
// The interface is slog-compatible so that callers can plug in their own
// implementation; the default provider is backed by zerolog. Field keys for
// machine learning context (fold numbers, data shapes, metrics) live in
// attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("cv").With(
//	    log.BackendKey, "logistic",
//	)
//	logger.Debug("fold finished",
//	    log.FoldKey, 3,
//	    log.BestIterationKey, 118,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Error accepts an error as
// its first field, which is then logged under the "error" key together with a
// stack trace when one is available.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is handled specially.
	//
	// Example:
	//   logger.Error("fold training failed",
	//       err,
	//       log.FoldKey, 2,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}

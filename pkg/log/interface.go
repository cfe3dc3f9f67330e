// Package log provides a structured logging interface for forestgo.
//
// This package defines a minimal, slog-compatible logging interface that allows for
// flexible implementation switching while providing forest-specific structured logging
// capabilities. The default backend is zerolog; a log/slog backend with
// cockroachdb/errors stack trace formatting is available through SetupLogger.
//
// Key features:
//   - slog-compatible interface
//   - forest-specific structured attributes (tree index, sampling strategy, timing)
//   - Context-aware logging with field chaining
//   - Test-friendly in-memory logger
//
// Example usage:
//   logger := log.GetLoggerWithName("forest.builder").With(
//       log.TreeCountKey, 10,
//   )
//   logger.Info("Training tree",
//       log.TreeIndexKey, 3,
//       log.SamplesKey, 1000,
//   )

package log

import (
	"context"
	"strings"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. Implementations treat an error passed
// as the first field specially and record it under the "error" key.
type Logger interface {
	// Debug logs a debug-level message, e.g. per-subset details.
	Debug(msg string, fields ...any)

	// Info logs an info-level message.
	//
	// Example:
	//   logger.Info("Forest training completed",
	//       log.DurationSecondsKey, 5.4,
	//       log.TreeCountKey, 100,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message.
	Warn(msg string, fields ...any)

	// Error logs an error-level message.
	//
	// Example:
	//   logger.Error("Problem training tree",
	//       err,
	//       log.TreeIndexKey, 3,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
// This type allows for level-based filtering of log messages.
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

// ParseLevel converts a textual level ("debug", "info", "warn", "error") to a Level.
// The second return value is false for unknown names.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
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
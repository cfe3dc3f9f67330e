package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Output formats accepted by SetupLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatCloud   = "cloud"
)

// SetupLogger installs the process-wide logger provider.
//
// "json" and "console" use zerolog; "cloud" uses a log/slog JSON handler in
// Cloud Logging format whose error attributes carry cockroachdb/errors stack traces.
func SetupLogger(loglevel, format string, w io.Writer) error {
	level, ok := ParseLevel(loglevel)
	if !ok {
		return fmt.Errorf("invalid log level :%s", loglevel)
	}

	switch format {
	case FormatJSON, "":
		SetProvider(NewZerologProvider(w, level))
	case FormatConsole:
		SetProvider(NewZerologProvider(zerolog.ConsoleWriter{Out: w}, level))
	case FormatCloud:
		SetProvider(NewSlogProvider(w, level))
	default:
		return fmt.Errorf("invalid log format :%s", format)
	}
	return nil
}

// NewCloudHandler builds the slog handler used by the "cloud" format.
func NewCloudHandler(w io.Writer, level slog.Leveler) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
	return WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger implements Logger on top of a *slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog logger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Debug implements Logger.Debug.
func (s *SlogLogger) Debug(msg string, fields ...any) {
	s.l.LogAttrs(context.Background(), slog.LevelDebug, msg, toAttrs(fields)...)
}

// Info implements Logger.Info.
func (s *SlogLogger) Info(msg string, fields ...any) {
	s.l.LogAttrs(context.Background(), slog.LevelInfo, msg, toAttrs(fields)...)
}

// Warn implements Logger.Warn.
func (s *SlogLogger) Warn(msg string, fields ...any) {
	s.l.LogAttrs(context.Background(), slog.LevelWarn, msg, toAttrs(fields)...)
}

// Error implements Logger.Error.
func (s *SlogLogger) Error(msg string, fields ...any) {
	s.l.LogAttrs(context.Background(), slog.LevelError, msg, toAttrs(fields)...)
}

// With implements Logger.With.
func (s *SlogLogger) With(fields ...any) Logger {
	attrs := toAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &SlogLogger{l: s.l.With(args...)}
}

// Enabled implements Logger.Enabled.
func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

func toAttrs(fields []any) []slog.Attr {
	kvs := normalizeFields(fields)
	attrs := make([]slog.Attr, len(kvs))
	for i, kv := range kvs {
		attrs[i] = slog.Any(kv.key, kv.value)
	}
	return attrs
}

// SlogProvider implements LoggerProvider with the Cloud Logging slog handler.
type SlogProvider struct {
	levelVar *slog.LevelVar
	logger   *slog.Logger
}

// NewSlogProvider creates a provider writing Cloud Logging JSON to w.
func NewSlogProvider(w io.Writer, level Level) *SlogProvider {
	lv := &slog.LevelVar{}
	lv.Set(slog.Level(level))
	return &SlogProvider{
		levelVar: lv,
		logger:   slog.New(NewCloudHandler(w, lv)),
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return NewSlogLogger(p.logger)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.levelVar.Set(slog.Level(level))
}

package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger creates a JSON zerolog-backed Logger writing to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{
		zl: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
}

// Debug implements Logger.Debug.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	emit(z.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	emit(z.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	emit(z.zl.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	emit(z.zl.Error(), msg, fields)
}

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.zl.With()
	for _, kv := range normalizeFields(fields) {
		if err, ok := kv.value.(error); ok {
			ctx = ctx.AnErr(kv.key, err)
			continue
		}
		ctx = ctx.Interface(kv.key, kv.value)
	}
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.zl.GetLevel() <= toZerologLevel(level)
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for _, kv := range normalizeFields(fields) {
		switch v := kv.value.(type) {
		case error:
			if kv.key == ErrAttrKey {
				e = e.Err(v)
			} else {
				e = e.AnErr(kv.key, v)
			}
			// Structured error types describe themselves.
			var m zerolog.LogObjectMarshaler
			if errors.As(v, &m) {
				e = e.Object(kv.key+".detail", m)
			}
		case []int:
			e = e.Ints(kv.key, v)
		case string:
			e = e.Str(kv.key, v)
		case int:
			e = e.Int(kv.key, v)
		case float64:
			e = e.Float64(kv.key, v)
		default:
			e = e.Interface(kv.key, v)
		}
	}
	e.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ZerologProvider implements LoggerProvider with zerolog loggers sharing one writer.
type ZerologProvider struct {
	mu    sync.RWMutex
	w     io.Writer
	level Level
}

// NewZerologProvider creates a provider writing to w at the given level.
// Pass zerolog.ConsoleWriter{Out: os.Stderr} for human-readable output.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{w: w, level: level}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.w, p.level)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider = NewZerologProvider(os.Stderr, LevelInfo)
)

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	if p == nil {
		return
	}
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
}

// GetLogger returns a logger from the process-wide provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a named logger from the process-wide provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel sets the level of the process-wide provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	defaultProvider.SetLevel(level)
}

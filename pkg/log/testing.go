// Package log provides testing utilities for structured logging.
//
// This file contains an in-memory Logger used by the package tests of the
// sampling policy and the forest builder to assert on emitted diagnostics.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// testSink is shared by a TestLogger and every logger derived from it with With.
type testSink struct {
	mu     sync.Mutex
	buffer *bytes.Buffer
}

// TestLogger is a logger implementation designed for testing.
// It captures all log messages in memory as JSON lines. It is safe for
// concurrent use, which matters for parallel forest builds.
type TestLogger struct {
	sink   *testSink
	level  Level
	fields map[string]interface{}
}

// NewTestLogger creates a new TestLogger with the specified minimum level.
//
// Example:
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("test message", "key", "value")
//	output := buffer.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		sink:   &testSink{buffer: buffer},
		level:  level,
		fields: make(map[string]interface{}),
	}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog(LevelDebug, msg, fields...)
	}
}

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog(LevelInfo, msg, fields...)
	}
}

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog(LevelWarn, msg, fields...)
	}
}

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog(LevelError, msg, fields...)
	}
}

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	newFields := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		newFields[k] = v
	}
	for _, kv := range normalizeFields(fields) {
		newFields[kv.key] = jsonValue(kv.value)
	}

	return &TestLogger{
		sink:   t.sink,
		level:  t.level,
		fields: newFields,
	}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(ctx context.Context, level Level) bool {
	return t.level <= level
}

func (t *TestLogger) writeLog(level Level, msg string, fields ...any) {
	entry := map[string]interface{}{
		"level":   level.String(),
		"message": msg,
	}
	for k, v := range t.fields {
		entry[k] = v
	}
	for _, kv := range normalizeFields(fields) {
		entry[kv.key] = jsonValue(kv.value)
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		jsonData = []byte(fmt.Sprintf(`{"level":%q,"message":%q}`, level.String(), msg))
	}

	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.buffer.Write(jsonData)
	t.sink.buffer.WriteByte('\n')
}

func jsonValue(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

func (t *TestLogger) snapshot() string {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	return t.sink.buffer.String()
}

// GetBuffer returns the internal buffer for direct access to captured logs.
// Callers must not read it while other goroutines are still logging.
func (t *TestLogger) GetBuffer() *bytes.Buffer {
	return t.sink.buffer
}

// GetLogEntries parses the captured log output and returns structured log entries.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.snapshot()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage checks if the captured logs contain a message with the specified content.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.snapshot(), message)
}

// ContainsField checks if the captured logs contain an entry with the specified field and value.
// Numbers are compared after JSON decoding, so integers must be given as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if fieldValue, exists := entry[key]; exists && fieldValue == value {
			return true
		}
	}
	return false
}

// CountLevel returns the number of captured entries at the given level.
func (t *TestLogger) CountLevel(level Level) int {
	entries, err := t.GetLogEntries()
	if err != nil {
		return 0
	}
	n := 0
	for _, entry := range entries {
		if entry["level"] == level.String() {
			n++
		}
	}
	return n
}

// Clear clears all captured log content.
func (t *TestLogger) Clear() {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.buffer.Reset()
}

// TestLoggerProvider implements LoggerProvider for testing scenarios.
type TestLoggerProvider struct {
	logger *TestLogger
	buffer *bytes.Buffer
}

// NewTestLoggerProvider creates a new test logger provider.
func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	logger, buffer := NewTestLogger(level)
	return &TestLoggerProvider{
		logger: logger,
		buffer: buffer,
	}, buffer
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.level = level
}

// GetBuffer returns the buffer for accessing captured logs.
func (p *TestLoggerProvider) GetBuffer() *bytes.Buffer {
	return p.buffer
}

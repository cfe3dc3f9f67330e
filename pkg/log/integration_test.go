package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationBuild)
	testLogger.Warn("warning message", ErrorCodeKey, ErrorPrecondition)
	testLogger.Error("error message", fmt.Errorf("test error"), TreeIndexKey, 3)

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}

	// A leading error is recorded under the error key.
	if !testLogger.ContainsField(ErrAttrKey, "test error") {
		t.Error("Expected leading error to be recorded under the error key")
	}
	if !testLogger.ContainsField(TreeIndexKey, 3.0) {
		t.Error("Expected tree index field after the leading error")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ComponentKey, "forest.builder",
		TreeCountKey, 10,
	)
	contextLogger.Info("contextual message", SamplingStrategyKey, "bagging")

	if !testLogger.ContainsField(ComponentKey, "forest.builder") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(TreeCountKey, 10.0) {
		t.Error("Tree count context not found")
	}
	if !testLogger.ContainsField(SamplingStrategyKey, "bagging") {
		t.Error("Sampling strategy field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestCountLevel(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	testLogger.Info("a")
	testLogger.Error("b")
	testLogger.Error("c")

	if got := testLogger.CountLevel(LevelError); got != 2 {
		t.Errorf("CountLevel(Error) = %d, want 2", got)
	}
	if got := testLogger.CountLevel(LevelWarn); got != 0 {
		t.Errorf("CountLevel(Warn) = %d, want 0", got)
	}

	testLogger.Clear()
	if got := testLogger.CountLevel(LevelInfo); got != 0 {
		t.Errorf("CountLevel after Clear = %d, want 0", got)
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("sampling").Info("named logger message")

	lines := buffer.String()
	for _, want := range []string{"provider test message", "named logger message", "sampling"} {
		if !strings.Contains(lines, want) {
			t.Errorf("%q not found in provider output", want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

type detailedErr struct{ index int }

func (e *detailedErr) Error() string { return fmt.Sprintf("tree %d failed", e.index) }

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo).With(ComponentKey, "forest.builder")

	logger.Debug("hidden")
	logger.Info("Training tree", TreeIndexKey, 2, FailedTreesKey, []int{1, 4})
	logger.Error("Problem training tree", &detailedErr{index: 2}, TreeIndexKey, 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}

	var info map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &info); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if info["message"] != "Training tree" || info["level"] != "info" {
		t.Errorf("unexpected info entry: %v", info)
	}
	if info[ComponentKey] != "forest.builder" {
		t.Errorf("expected component field, got %v", info[ComponentKey])
	}
	if info[TreeIndexKey] != 2.0 {
		t.Errorf("expected tree index 2, got %v", info[TreeIndexKey])
	}

	var errEntry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &errEntry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if errEntry["error"] != "tree 2 failed" {
		t.Errorf("expected error field, got %v", errEntry["error"])
	}

	if !logger.Enabled(context.Background(), LevelWarn) {
		t.Error("zerolog logger should be enabled for Warn at Info level")
	}
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("zerolog logger should not be enabled for Debug at Info level")
	}
}

func TestSetupLogger(t *testing.T) {
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo))

	var buf bytes.Buffer
	if err := SetupLogger("debug", FormatCloud, &buf); err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}

	GetLoggerWithName("forest.builder").Error("build failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"severity":"ERROR"`, `"message":"build failed"`, StacktraceAttrKey} {
		if !strings.Contains(out, want) {
			t.Errorf("cloud output missing %s: %s", want, out)
		}
	}

	if err := SetupLogger("verbose", FormatJSON, &buf); err == nil {
		t.Error("expected error for invalid level")
	}
	if err := SetupLogger("info", "xml", &buf); err == nil {
		t.Error("expected error for invalid format")
	}
}

// TestConcurrentLogging tests thread safety of the test logger
func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	child := testLogger.With(ComponentKey, "forest.builder")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				child.Info("tree trained", TreeIndexKey, id, "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 80 {
		t.Errorf("Expected 80 entries, got %d", len(entries))
	}
}

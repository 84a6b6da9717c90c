// pkg/logging/logger_test.go
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return entry
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Info(context.Background(), "craft spawned", "craft_id", 42)

	entry := decodeLogLine(t, &buf)
	if entry["msg"] != "craft spawned" {
		t.Errorf("msg = %v, expected 'craft spawned'", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, expected INFO", entry["level"])
	}
	if entry["craft_id"] != float64(42) {
		t.Errorf("craft_id = %v, expected 42", entry["craft_id"])
	}
}

func TestLogger_CorrelationIDAppended(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	ctx := WithCorrelationID(context.Background(), "run-123")
	logger.Info(ctx, "tick complete")

	entry := decodeLogLine(t, &buf)
	if entry["correlation_id"] != "run-123" {
		t.Errorf("correlation_id = %v, expected run-123", entry["correlation_id"])
	}
}

func TestLogger_NoCorrelationIDWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Info(context.Background(), "tick complete")

	entry := decodeLogLine(t, &buf)
	if _, present := entry["correlation_id"]; present {
		t.Error("correlation_id present without one in context")
	}
}

func TestLogger_ErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Error(context.Background(), "step failed", errors.New("boom"))

	entry := decodeLogLine(t, &buf)
	if entry["error"] != "boom" {
		t.Errorf("error = %v, expected boom", entry["error"])
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, expected ERROR", entry["level"])
	}
}

func TestWithCorrelationID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	if id := GetCorrelationID(ctx); id == "" {
		t.Error("expected generated correlation ID, got empty")
	}
}

func TestGetCorrelationID_EmptyWithout(t *testing.T) {
	if id := GetCorrelationID(context.Background()); id != "" {
		t.Errorf("GetCorrelationID = %q, expected empty", id)
	}
}

func TestGenerateCorrelationID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateCorrelationID()
		if len(id) != 16 {
			t.Fatalf("correlation ID %q has length %d, expected 16", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate correlation ID %q", id)
		}
		seen[id] = true
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("disk full")

	wrapped := WrapError(base, "saving config %s", "sim.json")
	if wrapped == nil {
		t.Fatal("WrapError returned nil for non-nil error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost the original for errors.Is")
	}
	if wrapped.Error() != "saving config sim.json: disk full" {
		t.Errorf("wrapped message = %q", wrapped.Error())
	}

	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) expected nil")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_ErrorIncludesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO", "json")

	logger.Error("Error removing contact", "id", "42")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output: %v (%s)", err, buf.String())
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace attribute on ERROR record")
	}
	if rec["id"] != "42" {
		t.Errorf("expected id=42, got %v", rec["id"])
	}
}

func TestNew_TextFormatAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN", "text")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO record should be filtered at WARN level")
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("expected text record, got %q", out)
	}
}

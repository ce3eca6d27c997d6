package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("frames exported", "count", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected json record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "frames exported" {
		t.Errorf("expected msg 'frames exported', got %v", rec["msg"])
	}
	if rec["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", rec["count"])
	}
}

func TestNewAutoPicksJSONForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("gif saved")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected json output for a buffer, got %q", buf.String())
	}
}

func TestConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("frame not found, skipping", "index", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "frame not found") {
		t.Errorf("expected warning in output, got %q", out)
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	base, _ := New(Options{Format: "json", Writer: &buf})
	logger, id := WithRun(base)
	if len(id) != 36 {
		t.Fatalf("expected uuid, got %q", id)
	}
	logger.Info("render started")
	if !strings.Contains(buf.String(), id) {
		t.Errorf("expected run id in output, got %q", buf.String())
	}
}

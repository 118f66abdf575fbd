package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("checking manifest", "path", "Cargo.toml")

	out := buf.String()
	if !strings.Contains(out, "checking manifest") {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, "path") || !strings.Contains(out, "Cargo.toml") {
		t.Errorf("output missing attributes: %s", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("checking manifest", "entries", 4)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "checking manifest" {
		t.Errorf("msg = %v, want checking manifest", record["msg"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn message should be logged")
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	// Must not panic and must be enabled for nothing visible.
	logger.Error("discarded")
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	logger := ForTest(t)
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext should fall back to the default logger")
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(handler).With("component", "check")

	logger.Debug("starting")

	out := buf.String()
	if !strings.Contains(out, "component") || !strings.Contains(out, "check") {
		t.Errorf("output missing bound attribute: %s", out)
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
	logger := slog.New(handler)

	logger.Log(context.Background(), LevelTrace, "deep diagnostics")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %s", buf.String())
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(handler)

	logger.Info("to text only")
	logger.Error("to both")

	if !strings.Contains(a.String(), "to text only") || !strings.Contains(a.String(), "to both") {
		t.Errorf("text handler missing records: %s", a.String())
	}
	if strings.Contains(b.String(), "to text only") {
		t.Error("json handler should filter info records")
	}
	if !strings.Contains(b.String(), "to both") {
		t.Errorf("json handler missing error record: %s", b.String())
	}
}

func TestSupportsColor_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if supportsColor(true) {
		t.Error("NO_COLOR should disable color even on a TTY")
	}
}

func TestSupportsColor_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if supportsColor(true) {
		t.Error("TERM=dumb should disable color")
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a TTY")
	}
}

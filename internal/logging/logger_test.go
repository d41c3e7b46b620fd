package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	WithComponent(logger, "runner").Info("job finished",
		String(FieldJobID, "maria_v2_pt_1735689600_0"),
		Int("images", 8),
	)

	line := buf.String()
	if !strings.Contains(line, "[runner]") {
		t.Fatalf("expected component tag, got %q", line)
	}
	if !strings.Contains(line, "job finished") {
		t.Fatalf("expected message, got %q", line)
	}
	if !strings.Contains(line, "job_id=maria_v2_pt_1735689600_0") {
		t.Fatalf("expected job id attr, got %q", line)
	}
	if !strings.Contains(line, "images=8") {
		t.Fatalf("expected int attr, got %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Warn("job skipped", String("reason", "outside window"))

	if !strings.Contains(buf.String(), `reason="outside window"`) {
		t.Fatalf("expected quoted reason, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below level, got %q", buf.String())
	}
	logger.Error("should appear")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("stage started",
		String(FieldComponent, "pipeline"),
		String(FieldVideo, "backyard"),
		String(FieldStage, "extract"),
		Int("frames", 120),
	)

	out := buf.String()
	if !strings.Contains(out, "[pipeline]") {
		t.Fatalf("expected component in output: %q", out)
	}
	if !strings.Contains(out, "backyard (extract)") {
		t.Fatalf("expected video/stage subject in output: %q", out)
	}
	if !strings.Contains(out, "- frames: 120") {
		t.Fatalf("expected field line in output: %q", out)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below level, got %q", buf.String())
	}

	logger.Warn("visible")
	if !strings.Contains(buf.String(), "WARN") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newJSONHandler(&buf, lvl, false))

	logger.Info("hello", String(FieldStage, "match"))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if decoded["msg"] != "hello" {
		t.Fatalf("expected msg key, got %v", decoded)
	}
	if decoded["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", decoded["level"])
	}
	if decoded["stage"] != "match" {
		t.Fatalf("expected stage attr, got %v", decoded)
	}
	if _, ok := decoded["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", decoded)
	}
}

func TestWithContextAttachesVideoAndStage(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	base := slog.New(newConsoleHandler(&buf, lvl, false))

	ctx := WithStage(WithVideo(context.Background(), "driveway"), "features")
	WithContext(ctx, base).Info("working")

	if !strings.Contains(buf.String(), "driveway (features)") {
		t.Fatalf("expected contextual subject, got %q", buf.String())
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatal("expected fallback to info")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("expected debug")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newConsoleLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	return slog.New(newConsoleHandler(buf, lvl)), buf
}

func TestConsoleHandlerFormat(t *testing.T) {
	logger, buf := newConsoleLogger()
	logger = NewComponentLogger(logger, "pipeline")

	logger.Info("run complete", Args(String("run_id", "r-1"), Int("inserted", 3))...)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two attr lines, got %q", out)
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "[pipeline]") || !strings.Contains(lines[0], "run complete") {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "    - run_id: r-1" {
		t.Fatalf("unexpected attr line: %q", lines[1])
	}
	if lines[2] != "    - inserted: 3" {
		t.Fatalf("unexpected attr line: %q", lines[2])
	}
}

func TestConsoleHandlerRendersErrors(t *testing.T) {
	logger, buf := newConsoleLogger()

	logger.Error("stage failed", Args(Error(errors.New("boom")))...)

	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "    - error: boom") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConsoleHandlerLevelGate(t *testing.T) {
	buf := &bytes.Buffer{}
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(buf, lvl))

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info must be gated at warn level: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Fatalf("warn record lost: %q", out)
	}
}

func TestJSONHandlerKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	lvl := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(buf, lvl))

	logger.Info("loaded records", Args(Int("count", 7))...)

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if decoded["msg"] != "loaded records" || decoded["level"] != "info" {
		t.Fatalf("unexpected keys: %v", decoded)
	}
	if _, ok := decoded["ts"]; !ok {
		t.Fatalf("missing ts key: %v", decoded)
	}
	if decoded["count"] != float64(7) {
		t.Fatalf("attr lost: %v", decoded)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing happens", Args(String("k", "v"))...)
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger must report disabled")
	}
}

package slogutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestReconHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("skipped file", "path", "src/a.py", "count", 42)

	output := buf.String()
	for _, want := range []string{"[info]", "skipped file", " | ", "path=src/a.py", "count=42"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("record should end with a newline")
	}
}

func TestReconHandler_QuotesSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("read failed", "error", "permission denied")

	if !strings.Contains(buf.String(), `error="permission denied"`) {
		t.Errorf("expected quoted value, got: %s", buf.String())
	}
}

func TestReconHandler_Levels(t *testing.T) {
	tests := []struct {
		logFunc  func(*slog.Logger)
		expected string
	}{
		{func(l *slog.Logger) { l.Debug("debug") }, "[debug]"},
		{func(l *slog.Logger) { l.Info("info") }, "[info]"},
		{func(l *slog.Logger) { l.Warn("warn") }, "[warn]"},
		{func(l *slog.Logger) { l.Error("error") }, "[error]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(NewLogger(&buf, slog.LevelDebug))
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("expected %s in output, got: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestReconHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("records below warn should be filtered: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be included")
	}
}

func TestReconHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		With("stage", "extract").
		WithGroup("batch")

	logger.Info("done", "size", 32, slog.Group("timing", "ms", 5))

	output := buf.String()
	for _, want := range []string{"stage=extract", "batch.size=32", "batch.timing.ms=5"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{5, false, slog.LevelDebug},
		{2, true, LevelSilent},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
	if OrDiscard(nil) == nil {
		t.Error("OrDiscard(nil) should return a logger")
	}
}

func TestTeeHandler(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewTeeHandler(
		NewReconHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		NewReconHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	logger.Info("only a")
	logger.Warn("both")

	if !strings.Contains(a.String(), "only a") || !strings.Contains(a.String(), "both") {
		t.Errorf("handler a missing records: %s", a.String())
	}
	if strings.Contains(b.String(), "only a") || !strings.Contains(b.String(), "both") {
		t.Errorf("handler b filtered incorrectly: %s", b.String())
	}
}

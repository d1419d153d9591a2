package log

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"Warn", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandlerFormatsLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelDebug))

	logger.Info("counted", slog.Int("total", 5))
	logger.Warn("slow input")
	logger.Error("failed", ErrorAttr(errors.New("boom")))
	logger.Debug("chunk")

	want := []string{
		"counted total=5",
		"[WARN] slow input",
		"[ERROR] failed error=boom",
		"[DEBUG] chunk",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHandlerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo)).With(slog.String("input", "a.txt"))

	logger.Info("read")
	if got := strings.TrimSpace(buf.String()); got != "read input=a.txt" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestCallbackLogger(t *testing.T) {
	var lines []string
	logger := NewCallbackLogger(func(r slog.Record) {
		lines = append(lines, FormatRecord(r))
	}, slog.LevelInfo)

	logger.With(slog.String("file", "x")).Warn("changed")
	logger.Debug("ignored")

	if len(lines) != 1 || lines[0] != "[WARN] changed file=x" {
		t.Errorf("Unexpected records %q", lines)
	}
}

func TestSetLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(LevelInfo)

	if err := SetLevel(LevelError); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	Info("hidden")
	Error("shown")

	if got := strings.TrimSpace(buf.String()); got != "[ERROR] shown" {
		t.Errorf("Unexpected output %q", got)
	}
	if IsDebugEnabled() {
		t.Error("Debug must be disabled at error level")
	}
	if err := SetLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

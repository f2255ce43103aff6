package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(WarnLevel, false, &buf)

	l.log(DebugLevel, "dropped debug")
	l.log(InfoLevel, "dropped info")
	l.log(WarnLevel, "kept warn")
	l.log(ErrorLevel, "kept error")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("Entries below the configured level leaked: %q", out)
	}
	if !strings.Contains(out, "kept warn") || !strings.Contains(out, "kept error") {
		t.Errorf("Entries at or above the configured level missing: %q", out)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(InfoLevel, false, &buf)

	l.log(InfoLevel, "cycle %d done", 7)

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("Text line missing level tag: %q", out)
	}
	if !strings.Contains(out, "cycle 7 done") {
		t.Errorf("Text line missing formatted message: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(InfoLevel, true, &buf)

	l.log(ErrorLevel, "fetch failed: %s", "timeout")

	var entry map[string]string
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not one JSON object: %v (%q)", err, buf.String())
	}
	if entry["level"] != "error" {
		t.Errorf("Unexpected level field: %q", entry["level"])
	}
	if entry["msg"] != "fetch failed: timeout" {
		t.Errorf("Unexpected msg field: %q", entry["msg"])
	}
	if entry["ts"] == "" {
		t.Error("Missing ts field")
	}
}

func TestUninitializedLoggerIsSilentAndSafe(t *testing.T) {
	var l *Logger
	l.log(InfoLevel, "must not panic")

	// Package-level funcs route through the same nil receiver before Init.
	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
}

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo}, // Default
		{"", LevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestNew_DefaultOutput(t *testing.T) {
	logger := New(Config{Output: nil}) // Should default to stderr
	if logger.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Info("hello %s", "world")

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level tag in output, got %q", out)
	}
	if !strings.Contains(out, "test: hello world") {
		t.Errorf("expected formatted message, got %q", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelWarn,
		Output: &buf,
	})

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("expected low-level messages filtered, got %q", out)
	}
	if strings.Count(out, "kept") != 2 {
		t.Errorf("expected 2 kept messages, got %q", out)
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelDebug,
		Output: &buf,
	})

	logger.WithField("component", "trace").Info("message")

	out := buf.String()
	if !strings.Contains(out, "component=trace") {
		t.Errorf("expected field in output, got %q", out)
	}

	// Original logger is unchanged.
	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Errorf("expected no field on original logger, got %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	// Must not panic and must produce nothing observable.
	Null.Debug("nothing")
	Null.Error("nothing")
}

package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
		{LogLevel(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{" Error ", LogLevelError},
		{"off", LogLevelOff},
		{"none", LogLevelOff},
		{"verbose", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "vhdlalign"})
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	l, buf := newBufferLogger(LogLevelDebug)

	l.WithFields(map[string]any{"line": 7, "cmd": "tab"}).Info("aligned %d cursors", 2)

	want := "2024-03-01T12:30:00.000 [INFO] vhdlalign: aligned 2 cursors {cmd=tab, line=7}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LogLevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] vhdlalign: shown warn") {
		t.Errorf("missing warning in %q", out)
	}
	if !strings.Contains(out, "[ERROR] vhdlalign: shown error") {
		t.Errorf("missing error in %q", out)
	}

	l.SetLevel(LogLevelDebug)
	if l.Level() != LogLevelDebug {
		t.Errorf("Level() = %v after SetLevel", l.Level())
	}
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("debug message not written after SetLevel(Debug)")
	}
}

func TestLogger_Off(t *testing.T) {
	l, buf := newBufferLogger(LogLevelOff)

	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("silenced logger wrote %q", buf.String())
	}

	l.SetLevel(LogLevelError)
	l.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("logger did not write after leaving LogLevelOff")
	}
}

func TestLogger_WithFieldsReplacesKey(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)

	l.WithField("line", 1).WithFields(map[string]any{"line": 9, "cmd": "tab"}).Info("x")

	if !strings.HasSuffix(buf.String(), "x {cmd=tab, line=9}\n") {
		t.Errorf("got %q", buf.String())
	}
}

func TestLogger_WithComponentDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)

	l.WithComponent("config").Info("child")
	l.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "child {component=config}") {
		t.Errorf("child line = %q", lines[0])
	}
	if strings.Contains(lines[1], "component") {
		t.Errorf("parent line has child field: %q", lines[1])
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic with no output configured.
	NullLogger.Info("nothing")
	NullLogger.Error("nothing %d", 1)
}

func TestGetSetLogger(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)

	l, _ := newBufferLogger(LogLevelInfo)
	SetLogger(l)
	if GetLogger() != l {
		t.Error("GetLogger did not return the logger passed to SetLogger")
	}
}

package logger

import (
	"strings"
	"testing"
)

func TestLogger_IconLevels(t *testing.T) {
	var buf strings.Builder
	logger := NewLoggerWithWriter(LogLevelWarn, &buf).WithComponent("settings")

	logger.DebugWithIcon("📊", "hidden debug")
	logger.WarnWithIcon("⚠️", "Failed to load settings", "error", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Errorf("Debug record written at warn level:\n%s", out)
	}
	for _, want := range []string{"level=WARN", "⚠️ Failed to load settings", "component=settings", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestLogger_DebugWithIcon(t *testing.T) {
	var buf strings.Builder
	NewLoggerWithWriter(LogLevelDebug, &buf).DebugWithIcon("📊", "Logging configured", "log_level", "debug")

	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "📊 Logging configured") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestLogLevel_Valid(t *testing.T) {
	for _, level := range []LogLevel{"debug", "INFO", "warn", "error"} {
		if !level.Valid() {
			t.Errorf("Expected %q to be valid", level)
		}
	}
	if LogLevel("verbose").Valid() {
		t.Error("Expected verbose to be invalid")
	}
}

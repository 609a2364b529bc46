package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuffer(t *testing.T, level string, format OutputFormat) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	t.Cleanup(func() {
		UnsetTestOutput()
		logger = nil
	})
	InitLogger(level, format)
	return buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := withBuffer(t, "warn", FormatText)

	Debug("resolving versions")
	Info("package selected")
	Warn("feed unavailable", Fields{"feed": "nightly"})
	Error("install failed", Fields{"project": "Web"})

	out := buf.String()
	assert.NotContains(t, out, "resolving versions")
	assert.NotContains(t, out, "package selected")
	assert.Contains(t, out, `level=WARN msg="feed unavailable" feed=nightly`)
	assert.Contains(t, out, `level=ERROR msg="install failed" project=Web`)
}

func TestFormattedVariants(t *testing.T) {
	buf := withBuffer(t, "debug", FormatText)

	Debugf("%d versions of %s", 3, "Contoso.Json")
	DebugfWithFields(Fields{"feed": "local"}, "synced %s", "index.json")
	Infof("selected %s", "Update")
	Warnf("skipping %s", "Api")
	Errorf("failed: %v", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `msg="3 versions of Contoso.Json"`)
	assert.Contains(t, lines[1], `msg="synced index.json" feed=local`)
	assert.Contains(t, lines[2], `level=INFO msg="selected Update"`)
	assert.Contains(t, lines[3], `level=WARN msg="skipping Api"`)
	assert.Contains(t, lines[4], `level=ERROR msg="failed: boom"`)
}

func TestJSONOutput(t *testing.T) {
	buf := withBuffer(t, "info", FormatJSON)

	Success("Action completed", Fields{"package": "Contoso.Json", "projects": 2})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Action completed", entry["msg"])
	assert.Equal(t, "Contoso.Json", entry["package"])
	assert.EqualValues(t, 2, entry["projects"])
	assert.Equal(t, "success", entry["status"])
}

func TestSetOutputFormatKeepsLevel(t *testing.T) {
	buf := withBuffer(t, "error", FormatText)

	SetOutputFormat(FormatJSON)
	Info("hidden")
	Error("shown")

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestGetLoggerDefaults(t *testing.T) {
	t.Cleanup(func() { logger = nil })
	logger = nil
	assert.NotNil(t, GetLogger())
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		_ = Configure("INFO", "text", "stdout")
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("WARN")

	Info("hidden %d", 1)
	Warn("shown %d", 2)
	Error("shown %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
	assert.Contains(t, out, "[ERROR] shown 3")
}

func TestSetLevel_IgnoresUnknown(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("DEBUG")
	SetLevel("verbose")

	Debug("still debug")
	assert.Contains(t, buf.String(), "still debug")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"Warn", LevelWarn, true},
		{"error", LevelError, true},
		{"trace", LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestConfigure_JSONToFile(t *testing.T) {
	t.Cleanup(func() {
		_ = Configure("INFO", "text", "stdout")
	})

	path := filepath.Join(t.TempDir(), "moodflow.log")
	require.NoError(t, Configure("info", "json", path))

	Info("worker %d executing job", 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "worker 2 executing job", entry["msg"])
	assert.NotEmpty(t, entry["time"])
}

func TestConfigure_BadPath(t *testing.T) {
	err := Configure("INFO", "text", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

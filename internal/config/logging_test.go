package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/hdkit/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected config.LogLevel
	}{
		{"off", config.LogLevelOff},
		{"NONE", config.LogLevelOff},
		{"error", config.LogLevelError},
		{"Info", config.LogLevelInfo},
		{"  debug  ", config.LogLevelDebug},
		{"warn", config.LogLevelError},
		{"", config.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevelError.String())
	assert.Equal(t, "info", config.LogLevelInfo.String())
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "error", config.LogLevel(99).String())
}

func readLogLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	// #nosec G304 -- test file path
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestNewLogger_FileIsJSON(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "logs", "hdkit.log")

	logger, err := config.NewLogger(config.LogLevelDebug, logPath)
	require.NoError(t, err)

	logger.Debug("parsed %d elements", 5)
	logger.Component("addr").Error("encode failed")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "parsed 5 elements", lines[0]["message"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "addr", lines[1]["component"])
	assert.Contains(t, lines[0], "time")
}

func TestNewLogger_LevelFilter(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "hdkit.log")

	logger, err := config.NewLogger(config.LogLevelError, logPath)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Error("shown")

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestNewLogger_OffOrNoPath(t *testing.T) {
	t.Parallel()

	never := filepath.Join(t.TempDir(), "never.log")
	off, err := config.NewLogger(config.LogLevelOff, never)
	require.NoError(t, err)
	off.Error("dropped")
	require.NoError(t, off.Close())
	assert.NoFileExists(t, never)

	noPath, err := config.NewLogger(config.LogLevelDebug, "")
	require.NoError(t, err)
	noPath.Debug("dropped")
	require.NoError(t, noPath.Close())
}

func TestLogger_DropsAfterClose(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "hdkit.log")

	logger, err := config.NewLogger(config.LogLevelDebug, logPath)
	require.NoError(t, err)
	logger.Info("before")
	require.NoError(t, logger.Close())
	logger.Error("after")
	require.NoError(t, logger.Close())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Equal(t, "before", lines[0]["message"])
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := config.NewConsoleLogger(&buf, config.LogLevelInfo, true)
	logger.Info("hello %s", "world")
	logger.Debug("filtered")

	out := buf.String()
	assert.Contains(t, out, "hello world")
	assert.NotContains(t, out, "filtered")
}

func TestNullLogger(t *testing.T) {
	t.Parallel()
	logger := config.NullLogger()
	logger.Error("nothing")
	logger.Component("x").Debug("nothing")
	require.NoError(t, logger.Close())
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, levelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelWarn, levelFromEnv())
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "regime", "new")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "regime=new")
	assert.NotContains(t, out, "\x1b[", "Should not colorize non-terminal output")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}), "buffers are never terminals")

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f), "regular files are not terminals")

	logger := New(f, slog.LevelInfo)
	logger.Info("to file")
	require.NoError(t, f.Sync())
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	var engineLogger calculation.Logger = NewSlogLogger(New(&buf, slog.LevelDebug))

	engineLogger.Debugf("old regime liability %s", "106600")
	engineLogger.Infof("recommended %s", "new")
	engineLogger.Warnf("ignored %d keys", 2)
	engineLogger.Errorf("failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "DBG old regime liability 106600")
	assert.Contains(t, out, "INF recommended new")
	assert.Contains(t, out, "WRN ignored 2 keys")
	assert.Contains(t, out, "ERR failed: boom")
}

func TestNewSlogLogger_NilUsesDefault(t *testing.T) {
	logger := NewSlogLogger(nil)
	require.NotNil(t, logger.Logger)
	assert.Equal(t, slog.Default(), logger.Logger)
}

func TestSetupWithLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logger := SetupWithLevel(slog.LevelError)

	assert.Equal(t, logger, slog.Default())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

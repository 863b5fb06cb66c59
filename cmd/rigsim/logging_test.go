package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rigsim/config"
)

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLoggingDisabled(t *testing.T) {
	restoreDefaultLogger(t)
	dir := t.TempDir()
	cfg := config.Log{File: filepath.Join(dir, "logs", "rigsim.log"), MaxSizeMB: 1}

	closer := setupLogging(cfg, false, slog.LevelInfo, nil)
	assert.Nil(t, closer)

	slog.Info("should be discarded")
	_, err := os.Stat(cfg.File)
	assert.True(t, os.IsNotExist(err), "log file must not be created when logging is disabled")
}

func TestSetupLoggingFallbackWriter(t *testing.T) {
	restoreDefaultLogger(t)
	var buf bytes.Buffer

	closer := setupLogging(config.Log{}, false, slog.LevelWarn, &buf)
	assert.Nil(t, closer)

	slog.Info("filtered")
	slog.Warn("kept")
	assert.NotContains(t, buf.String(), "filtered")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetupLoggingFile(t *testing.T) {
	restoreDefaultLogger(t)
	dir := t.TempDir()
	cfg := config.Log{File: filepath.Join(dir, "logs", "rigsim.log"), MaxSizeMB: 1, MaxBackups: 1}

	closer := setupLogging(cfg, true, slog.LevelDebug, nil)
	require.NotNil(t, closer)

	slog.Debug("debug line", "frame", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logging started")
	assert.Contains(t, string(data), "debug line")
	assert.Contains(t, string(data), "frame=7")
}

func TestLogLevelFlag(t *testing.T) {
	var f logLevelFlag
	assert.Equal(t, "INFO", f.String())
	assert.False(t, f.set)

	require.NoError(t, f.Set("debug"))
	assert.Equal(t, slog.LevelDebug, f.value)
	assert.True(t, f.set)

	require.NoError(t, f.Set("WARN"))
	assert.Equal(t, slog.LevelWarn, f.value)

	assert.Error(t, f.Set("verbose"))
	assert.Equal(t, slog.LevelWarn, f.value)
}

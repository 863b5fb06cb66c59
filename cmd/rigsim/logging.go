package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/rigsim/config"
)

// setupLogging routes slog to a rotating file when debug is set, otherwise to fallback
// The returned closer is nil when no file was opened
func setupLogging(cfg config.Log, debug bool, level slog.Level, fallback io.Writer) io.Closer {
	opts := &slog.HandlerOptions{Level: level}
	if !debug {
		if fallback == nil {
			fallback = io.Discard
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(fallback, opts)))
		return nil
	}

	out := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, opts)))
	slog.Info("logging started", "file", cfg.File, "level", level)
	return out
}

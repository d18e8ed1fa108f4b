// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide JSON [slog.Logger].
//
// Output always goes to stdout. When a log file is configured, entries are
// also written to a size-rotated file managed by lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/manabase/internal/platform/config"
)

// AppName is attached to every entry as the "app" attribute.
const AppName = "manabase"

// New returns a JSON logger at info level, or debug level when debug is set.
// The returned closer flushes the rotating file and is a no-op without one.
func New(cfg config.LogConfig, debug bool) (*slog.Logger, io.Closer) {
	writers := []io.Writer{os.Stdout}
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", AppName)), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

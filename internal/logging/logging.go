// Package logging provides structured logging with file rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ryanjanoconnell/httpdiff/internal/config"
)

// Setup initializes the global slog logger from the tool configuration.
// Logs go to a rotating file when LOG_FILE is set; otherwise stderr, so
// log lines never mix into the interactive prompt on stdout. Returns a
// cleanup function to call on shutdown.
func Setup(cfg *config.Config) (func() error, error) {
	var writer io.Writer
	cleanup := func() error { return nil }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   cfg.LogCompress,
			LocalTime:  true,
		}
		writer = lj
		cleanup = lj.Close
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})
	slog.SetDefault(slog.New(handler))

	return cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package log provides structured logging for go-pluto.
// Interactive runs get tinted terminal output; set GO_ENV=production
// for JSON lines.
package log

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Init initializes the global logger with the specified level.
// Valid levels: "debug", "info", "warn", "error". The first call wins;
// later calls keep the original configuration.
func Init(level string) {
	once.Do(func() {
		lvl := parseLevel(level)

		if os.Getenv("GO_ENV") == "production" {
			logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
		} else {
			logger = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
				Level:      lvl,
				TimeFormat: time.TimeOnly,
			}))
		}

		slog.SetDefault(logger)
	})
}

// L returns the global logger, initializing it at info level if Init has
// not run yet.
func L() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

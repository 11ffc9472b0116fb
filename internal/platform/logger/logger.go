package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/iscs-gateway/internal/config"
)

// Setup initializes the gateway's logging system from the server
// configuration. It creates a structured JSON logger writing to stdout with
// the configured level and installs it as the slog default, so package level
// calls (slog.Info, slog.Error, ...) use it too.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(cfg config.ServerConfig, out io.Writer) (*slog.Logger, error) {
	level := ParseLevel(cfg.LogLevel)
	if level == nil {
		// Invalid levels are rejected by config validation; this path only
		// sees hand-built configs.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
		info := slog.LevelInfo
		level = &info
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: *level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// ParseLevel maps a case-insensitive level name to a slog level. It returns
// nil for unknown names.
func ParseLevel(name string) *slog.Level {
	var level slog.Level
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil
	}
	return &level
}

// Package logging configures debug tracing from the environment.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel  = "WINDTRADER_LOG_LEVEL"
	EnvFormat = "WINDTRADER_LOG_FORMAT"
)

// Config selects the log level and handler format.
type Config struct {
	// Level is debug, info, warn or error. Empty disables logging.
	Level string
	// Format is text or json.
	Format string
}

// ConfigFromEnv reads the configuration through getenv, which is usually
// os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	return Config{
		Level:  strings.ToLower(strings.TrimSpace(getenv(EnvLevel))),
		Format: strings.ToLower(strings.TrimSpace(getenv(EnvFormat))),
	}
}

// Enabled reports whether the configuration turns logging on.
func (c Config) Enabled() bool {
	return c.Level != "" && c.Level != "off"
}

// New creates a logger writing to w. It does not set the global logger.
func New(c Config, w io.Writer) *slog.Logger {
	if !c.Enabled() {
		return slog.New(slog.DiscardHandler)
	}

	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if c.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// FromEnv creates a logger writing to stderr as configured by the process
// environment.
func FromEnv() *slog.Logger {
	return New(ConfigFromEnv(os.Getenv), os.Stderr)
}

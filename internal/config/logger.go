package config

import (
	"io"
	"log/slog"

	"github.com/lepinkainen/humanlog"
)

// NewLogger builds the process logger: human-readable text by default,
// JSON when LOG_FORMAT=json. An unknown level falls back to info.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(humanlog.NewHandler(w, &humanlog.Options{Level: level}))
}

package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewTint builds a colored slog logger writing to w. Color is disabled when
// noColor is set, e.g. when w is not a terminal.
func NewTint(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// Setup installs a tint logger as the slog default and returns it wrapped as
// a Logger.
func Setup(w io.Writer, level string, noColor bool) *SlogLogger {
	l := NewTint(w, ParseLevel(level), noColor)
	slog.SetDefault(l)
	return NewSlogLogger(l)
}

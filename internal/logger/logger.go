// Package logger builds the slog logger shared by the basket packages.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Options selects the handler and level.
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // text or json
	AddSource bool
}

// New builds a logger writing to w and installs it as the slog default.
func New(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a slog.Level; unknown names mean info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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

package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config selects and tunes a Logger implementation.
type Config struct {
	Backend string // "slog" (default) or "zap"
	Level   string // "debug", "info" (default), "warn", "error"
	Format  string // "text" (default) or "json"
}

// New builds a Logger writing to w.
func New(cfg Config, w io.Writer) Logger {
	switch strings.ToLower(cfg.Backend) {
	case "zap":
		return newZap(cfg, w)
	default:
		return newSlog(cfg, w)
	}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

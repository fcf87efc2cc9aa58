package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler and the base attributes stamped on every
// record.
type Config struct {
	Service string // logical service name, e.g. "talentpipe"
	Version string // build version
	Env     string // "dev", "staging", "prod"
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" (default) or "text"

	Output io.Writer // defaults to os.Stdout
}

// New builds the process logger: service/version/env attributes on every
// line, JSON by default, source locations only outside prod (they are
// noise in aggregated logs). The result is also installed as the slog
// default so package-level slog calls land in the same stream.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env != "prod",
		Level:     parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// parseLevel maps a config string to a slog.Level; unknown values fall
// back to info rather than failing startup.
func parseLevel(lvl string) slog.Level {
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

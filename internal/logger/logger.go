// Package logger builds the slog logger for one todos invocation.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/lumberjack.v2"

	"github.com/randalmurphal/todos/internal/config"
)

// New returns a logger writing to w, or to a rotated file when cfg.File is set.
// verbose forces debug level. Every record carries an invocation id.
// The returned closer releases the log file and is safe to call when there is none.
func New(cfg config.LogConfig, w io.Writer, verbose bool) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		}
		w = lj
		closer = lj
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("invocation", uuid.NewString()), closer
}

// ParseLevel maps a config level name to a slog level. Unknown names mean warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging builds the structured loggers used across hsrsize.
//
// Loggers are constructed explicitly and passed to the components that need
// them; nothing here touches slog's default logger.
//
//	log := logging.New(os.Stderr, slog.LevelWarn, false)
//	log = logging.Component(log, "store")
//	log.Error("write failed", "table", name, "error", err)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w at the given level.
// If jsonFormat is true, logs are output as JSON; otherwise, human-readable text.
func New(w io.Writer, level slog.Level, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Component returns log with the component name attached to every entry.
func Component(log *slog.Logger, name string) *slog.Logger {
	if log == nil {
		log = Discard()
	}

	return log.With("component", name)
}

// ParseLevel maps debug, info, warn/warning and error to a slog level.
// The empty string maps to warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

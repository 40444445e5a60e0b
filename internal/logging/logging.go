// Package logging builds the console's slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config holds logger settings
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// sensitivePatterns are matched case-insensitively against attribute keys
var sensitivePatterns = []string{
	"token",
	"password",
	"passphrase",
	"secret",
	"authorization",
	"bearer",
	"salt",
}

// Redacted replaces the value of sensitive attributes
const Redacted = "[REDACTED]"

// New creates a logger writing to w with secret redaction
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redactSecrets,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level; unknown names mean info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func redactSecrets(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(key, pattern) {
			return slog.String(a.Key, Redacted)
		}
	}
	return a
}

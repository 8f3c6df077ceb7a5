// Package logging builds the slog logger used by trialcheck and adapts it to
// the warning sink expected by pkg/types.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/p829911/optuna/pkg/types"
)

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger writing to w. format is "text" or "json".
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(h), nil
}

// SlogSink forwards advisory notices to a logger at WARN level.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink returns a sink logging to l, or to slog.Default when l is nil.
func NewSlogSink(l *slog.Logger) SlogSink {
	if l == nil {
		l = slog.Default()
	}
	return SlogSink{Logger: l}
}

// Warn implements types.WarningSink.
func (s SlogSink) Warn(category types.WarningCategory, message string) {
	s.Logger.Warn(message, slog.String("category", string(category)))
}

var _ types.WarningSink = SlogSink{}

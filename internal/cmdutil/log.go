// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// NewLogger returns a text logger on dst. quiet keeps errors only; an
// unknown level falls back to info.
func NewLogger(dst io.Writer, level string, quiet bool) *slog.Logger {
	lv := ParseLevel(level)
	if quiet {
		lv = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: lv}))
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a slog.Logger configured for the desired verbosity and
// format. Logs go to w so stdout stays free for the run summary.
func NewLogger(level string, json bool, w io.Writer) *slog.Logger {
	handlerLevel := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		handlerLevel = slog.LevelDebug
	case "warn":
		handlerLevel = slog.LevelWarn
	case "error":
		handlerLevel = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: handlerLevel}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger on stdout at Info level with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithLevel(os.Stdout, slog.LevelInfo, extractors...)
}

// NewWithLevel creates a JSON logger writing to w at the given level.
func NewWithLevel(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

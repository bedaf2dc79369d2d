package logger

import "log/slog"

// NewNope creates a logger that discards all output.
// Use it as the default when no logger is configured, and in tests.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

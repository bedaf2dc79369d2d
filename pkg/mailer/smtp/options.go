package smtp

import (
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Option configures a Sender.
type Option func(*Sender)

// WithTokenSource enables XOAUTH2: a fresh access token is fetched for every dial.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(s *Sender) {
		s.tokens = ts
	}
}

// WithLimiter replaces the limiter derived from Config.MaxRate.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Sender) {
		s.limiter = l
	}
}

// WithLogger sets the logger for connection lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sender) {
		s.log = log
	}
}

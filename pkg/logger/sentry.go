package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are stored in Sentry (Warn or Error).
	MinLevel slog.Level
}

// NewWithSentry creates a logger writing JSON to w and forwarding to Sentry.
// If DSN is empty, or Sentry fails to initialize, only w is used.
// The returned flush func must be called before the process exits; it is a
// no-op when Sentry is not active.
func NewWithSentry(cfg SentryConfig, w io.Writer, level slog.Level, extractors ...ContextExtractor) (*slog.Logger, func()) {
	out := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	noop := func() {}

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noop
	}

	// Failed deliveries are warnings; only run-level faults open issues.
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	log := slog.New(NewLogHandlerDecorator(newMultiHandler(out, sentryHandler), extractors...))
	return log, func() { sentry.Flush(flushTimeout) }
}

const flushTimeout = 2 * time.Second

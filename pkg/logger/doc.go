// Package logger builds the structured loggers used across mailblast.
//
// It extends log/slog with context-based attribute injection and optional
// Sentry reporting.
//
// # Basic Usage
//
//	log := logger.NewWithLevel(os.Stdout, logger.ParseLevel("debug"), logger.RunIDExtractor)
//
//	ctx := logger.WithRunID(context.Background(), uuid.NewString())
//	log.InfoContext(ctx, "batch started", slog.Int("batch", 1))
//	// {"level":"INFO","msg":"batch started","batch":1,"run_id":"..."}
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every record, so values stored in the context later are
// still picked up. RunIDExtractor is the one mailblast uses; it tags every
// record of a dispatch run with "run_id".
//
// # Sentry Integration
//
//	log, flush := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	}, os.Stdout, slog.LevelInfo, logger.RunIDExtractor)
//	defer flush()
//
// Errors create Sentry issues; warnings (such as a recipient that failed all
// attempts) are stored as logs. With an empty DSN the logger writes to the
// given writer only, so the same code path works locally.
package logger

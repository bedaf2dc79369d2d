package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/storage"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithOutput sets where human-readable progress is printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// WithTransport replaces the transport built from configuration.
// The App still closes it after the run.
func WithTransport(t mailer.Transport) Option {
	return func(a *App) {
		if t != nil {
			a.transport = t
		}
	}
}

// ObjectStore is the storage the App uses for attachments and report uploads.
type ObjectStore interface {
	storage.Storage
	Location(key string) string
}

// WithStorage replaces the S3 storage built from configuration.
func WithStorage(s ObjectStore) Option {
	return func(a *App) {
		if s != nil {
			a.store = s
		}
	}
}

// WithContext sets the base context for signal handling.
// Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.baseCtx = ctx
		}
	}
}

// WithSleep overrides how the dispatcher waits between attempts and batches.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(a *App) {
		a.sleep = sleep
	}
}

// ShutdownHook registers a cleanup function run after the report is written.
// Hooks run in registration order with a bounded context.
func ShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}

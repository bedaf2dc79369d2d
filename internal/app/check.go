package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/mailblast/pkg/health"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
	"github.com/dmitrymomot/mailblast/pkg/storage"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Check verifies the run could start without sending anything: the
// recipient list and message load, and the relay and bucket are reachable.
// Transports and stores without a Ping method are considered reachable.
func (a *App) Check() (*health.Response, error) {
	ctx, cancel := signal.NotifyContext(a.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	a.shutdownHooks = append([]func(context.Context) error{a.closeTransport}, a.shutdownHooks...)
	defer a.shutdown(ctx)

	if a.store == nil && a.cfg.Storage.Enabled() {
		s, err := storage.New(a.cfg.Storage)
		if err != nil {
			return nil, errors.Join(ErrSetup, err)
		}
		a.store = s
	}
	if a.transport == nil {
		t, err := newTransport(ctx, a.cfg, a.log)
		if err != nil {
			return nil, errors.Join(ErrSetup, err)
		}
		a.transport = t
	}

	checks := health.Checks{
		"recipients": func(context.Context) error {
			_, err := recipients.Load(a.cfg.RecipientsFile)
			return err
		},
		"message": func(ctx context.Context) error {
			_, err := a.payload(ctx)
			return err
		},
		"transport": ping(a.transport),
	}
	if a.store != nil {
		checks["storage"] = ping(a.store)
	}

	return health.Run(ctx, checks, health.WithLogger(a.log)), nil
}

func ping(v any) health.CheckFunc {
	return func(ctx context.Context) error {
		if p, ok := v.(pinger); ok {
			return p.Ping(ctx)
		}
		return nil
	}
}

// PrintCheck writes one line per check to the App's output.
func (a *App) PrintCheck(resp *health.Response) {
	con := newConsole(a.out, a.cfg.MaxAttempts)
	for _, name := range resp.Names() {
		c := resp.Checks[name]
		if c.Status == health.StatusHealthy {
			con.printf("✓ %s (%s)\n", name, c.Duration.Round(time.Millisecond))
			continue
		}
		con.printf("✗ %s: %s\n", name, c.Error)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/dispatch"
	"github.com/dmitrymomot/mailblast/pkg/id"
	"github.com/dmitrymomot/mailblast/pkg/logger"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
	"github.com/dmitrymomot/mailblast/pkg/report"
	"github.com/dmitrymomot/mailblast/pkg/storage"
)

const defaultShutdownTimeout = 30 * time.Second

// App runs one bulk send.
type App struct {
	cfg           *config.Config
	log           *slog.Logger
	out           io.Writer
	transport     mailer.Transport
	store         ObjectStore
	baseCtx       context.Context
	sleep         func(ctx context.Context, d time.Duration) error
	shutdownHooks []func(context.Context) error
}

// New creates an App. cfg must already be validated.
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		log:     logger.NewNope(),
		out:     os.Stdout,
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the send and blocks until the report is written.
// It handles SIGINT and SIGTERM by stopping after in-flight deliveries.
//
// The returned report is nil only when setup failed.
func (a *App) Run() (*report.Report, error) {
	ctx, cancel := signal.NotifyContext(a.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runID := id.NewULID()
	ctx = logger.WithRunID(ctx, runID)
	a.shutdownHooks = append([]func(context.Context) error{a.closeTransport}, a.shutdownHooks...)
	defer a.shutdown(ctx)

	if a.store == nil && a.cfg.Storage.Enabled() {
		s, err := storage.New(a.cfg.Storage)
		if err != nil {
			return nil, errors.Join(ErrSetup, err)
		}
		a.store = s
	}

	list, err := recipients.Load(a.cfg.RecipientsFile)
	if err != nil {
		return nil, errors.Join(ErrSetup, err)
	}

	email, err := a.payload(ctx)
	if err != nil {
		return nil, errors.Join(ErrSetup, err)
	}

	if a.transport == nil {
		t, err := newTransport(ctx, a.cfg, a.log)
		if err != nil {
			return nil, errors.Join(ErrSetup, err)
		}
		a.transport = t
	}

	con := newConsole(a.out, a.cfg.MaxAttempts)
	d, err := dispatch.New(a.transport, email,
		dispatch.WithBatchSize(a.cfg.BatchSize),
		dispatch.WithConcurrency(a.cfg.Concurrency),
		dispatch.WithCooldown(a.cfg.BatchCooldown),
		dispatch.WithMaxAttempts(a.cfg.MaxAttempts),
		dispatch.WithBackoff(a.cfg.RetryBackoff),
		dispatch.WithSleep(a.sleep),
		dispatch.WithObserver(dispatch.Observers(con, dispatch.NewLogObserver(a.log))),
	)
	if err != nil {
		return nil, errors.Join(ErrSetup, err)
	}

	rep, runErr := d.Run(ctx, list)
	if rep == nil {
		return nil, runErr
	}

	// The report must be written even when the run was interrupted.
	saveCtx, saveCancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer saveCancel()

	sinks := a.sinks(runID)
	locations := make([]string, 0, len(sinks))
	for _, s := range sinks {
		locations = append(locations, s.Location())
	}
	saveErr := report.Save(saveCtx, rep, sinks...)
	if saveErr != nil {
		a.log.ErrorContext(ctx, "failed to save report", slog.Any("error", saveErr))
	}
	con.summary(rep, locations, saveErr)

	if runErr != nil {
		return rep, errors.Join(ErrInterrupted, runErr)
	}
	return rep, nil
}

// payload composes the message once; every recipient gets a copy.
func (a *App) payload(ctx context.Context) (*mailer.Email, error) {
	var atts []mailer.Attachment
	if a.cfg.Attachment != "" {
		var objects mailer.ObjectGetter
		if a.store != nil {
			objects = a.store
		}
		att, err := mailer.LoadAttachment(ctx, a.cfg.Attachment, objects)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}

	composer := mailer.NewComposer(mailer.WithFrom(a.cfg.Sender()))
	email, err := composer.ComposeFile(a.cfg.MessageFile, atts...)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", a.cfg.MessageFile, err)
	}
	return email, nil
}

// sinks lists report destinations. A REPORT_S3_KEY ending in "/" is a
// prefix: each run uploads to <prefix><run id>.json.
func (a *App) sinks(runID string) []report.Sink {
	sinks := []report.Sink{report.FileSink{Path: a.cfg.ReportPath}}
	if a.cfg.ReportS3Key == "" || a.store == nil {
		return sinks
	}
	key := a.cfg.ReportS3Key
	if strings.HasSuffix(key, "/") {
		key += runID + ".json"
	}
	return append(sinks, report.StorageSink{Store: a.store, Key: key})
}

// closeTransport releases the transport, whether injected or built, once
// Run or Check returns.
func (a *App) closeTransport(context.Context) error {
	if a.transport == nil {
		return nil
	}
	return a.transport.Close()
}

// shutdown runs the registered hooks with a bounded context.
func (a *App) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer cancel()

	for _, hook := range a.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			a.log.ErrorContext(ctx, "shutdown hook failed", slog.Any("error", err))
		}
	}
}

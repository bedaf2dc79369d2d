package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailblast/pkg/report"
)

// Observer receives progress events. AttemptFinished is called from the
// delivery goroutines and must be safe for concurrent use; the other
// methods are called from the goroutine running Run.
type Observer interface {
	RunStarted(ctx context.Context, recipients, batches int)
	BatchStarted(ctx context.Context, index, batches, size int)
	AttemptFinished(ctx context.Context, a Attempt)
	BatchFinished(ctx context.Context, res BatchResult)
	CooldownStarted(ctx context.Context, d time.Duration)
	RunFinished(ctx context.Context, rep *report.Report)
}

// NopObserver ignores all events. Embed it to implement a subset of Observer.
type NopObserver struct{}

func (NopObserver) RunStarted(context.Context, int, int)           {}
func (NopObserver) BatchStarted(context.Context, int, int, int)    {}
func (NopObserver) AttemptFinished(context.Context, Attempt)       {}
func (NopObserver) BatchFinished(context.Context, BatchResult)     {}
func (NopObserver) CooldownStarted(context.Context, time.Duration) {}
func (NopObserver) RunFinished(context.Context, *report.Report)    {}

type multiObserver []Observer

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	m := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multiObserver) RunStarted(ctx context.Context, recipients, batches int) {
	for _, o := range m {
		o.RunStarted(ctx, recipients, batches)
	}
}

func (m multiObserver) BatchStarted(ctx context.Context, index, batches, size int) {
	for _, o := range m {
		o.BatchStarted(ctx, index, batches, size)
	}
}

func (m multiObserver) AttemptFinished(ctx context.Context, a Attempt) {
	for _, o := range m {
		o.AttemptFinished(ctx, a)
	}
}

func (m multiObserver) BatchFinished(ctx context.Context, res BatchResult) {
	for _, o := range m {
		o.BatchFinished(ctx, res)
	}
}

func (m multiObserver) CooldownStarted(ctx context.Context, d time.Duration) {
	for _, o := range m {
		o.CooldownStarted(ctx, d)
	}
}

func (m multiObserver) RunFinished(ctx context.Context, rep *report.Report) {
	for _, o := range m {
		o.RunFinished(ctx, rep)
	}
}

// LogObserver writes progress as structured log records.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an observer logging to log.
func NewLogObserver(log *slog.Logger) *LogObserver {
	return &LogObserver{log: log.With(slog.String("component", "dispatch"))}
}

func (l *LogObserver) RunStarted(ctx context.Context, recipients, batches int) {
	l.log.InfoContext(ctx, "run started",
		slog.Int("recipients", recipients),
		slog.Int("batches", batches),
	)
}

func (l *LogObserver) BatchStarted(ctx context.Context, index, batches, size int) {
	l.log.InfoContext(ctx, "batch started",
		slog.Int("batch", index+1),
		slog.Int("batches", batches),
		slog.Int("size", size),
	)
}

func (l *LogObserver) AttemptFinished(ctx context.Context, a Attempt) {
	attrs := []any{
		slog.String("recipient", a.Recipient),
		slog.Int("attempt", a.Number),
	}
	switch {
	case a.Err == nil:
		l.log.DebugContext(ctx, "message delivered", append(attrs, slog.String("message_id", a.MessageID))...)
	case a.Final:
		l.log.ErrorContext(ctx, "delivery failed", append(attrs, slog.Any("error", a.Err))...)
	default:
		l.log.WarnContext(ctx, "delivery attempt failed, retrying",
			append(attrs, slog.Any("error", a.Err), slog.Duration("backoff", a.Backoff))...)
	}
}

func (l *LogObserver) BatchFinished(ctx context.Context, res BatchResult) {
	ok := res.Succeeded()
	l.log.InfoContext(ctx, "batch finished",
		slog.Int("batch", res.Index+1),
		slog.Int("succeeded", ok),
		slog.Int("failed", len(res.Outcomes)-ok),
	)
}

func (l *LogObserver) CooldownStarted(ctx context.Context, d time.Duration) {
	l.log.InfoContext(ctx, "cooling down before next batch", slog.Duration("cooldown", d))
}

func (l *LogObserver) RunFinished(ctx context.Context, rep *report.Report) {
	l.log.InfoContext(ctx, "run finished",
		slog.Int("total", rep.TotalRecipients),
		slog.Int("succeeded", rep.SuccessCount),
		slog.Int("failed", rep.FailureCount),
		slog.Float64("elapsed_minutes", rep.ElapsedMinutes),
	)
}

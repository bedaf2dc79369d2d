package mailblast

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailblast/pkg/dispatch"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
	"github.com/dmitrymomot/mailblast/pkg/report"
)

// Type aliases - public API
type (
	// Dispatcher delivers one message to recipients in batches.
	Dispatcher = dispatch.Dispatcher

	// Option configures a Dispatcher.
	Option = dispatch.Option

	// Observer receives progress events during a run.
	Observer = dispatch.Observer

	// Attempt describes one send to one recipient.
	Attempt = dispatch.Attempt

	// Outcome is the final result for one recipient.
	Outcome = dispatch.Outcome

	// BatchResult holds the outcomes of one batch.
	BatchResult = dispatch.BatchResult

	// Transport delivers a single message.
	Transport = mailer.Transport

	// Email is a prepared message.
	Email = mailer.Email

	// Report is the final accounting of a run.
	Report = report.Report

	// ReportSink persists a serialized report.
	ReportSink = report.Sink

	// FileSink writes the report to a local file.
	FileSink = report.FileSink
)

// New creates a Dispatcher sending email through transport.
func New(transport Transport, email *Email, opts ...Option) (*Dispatcher, error) {
	return dispatch.New(transport, email, opts...)
}

// WithBatchSize sets how many recipients are delivered concurrently.
func WithBatchSize(n int) Option {
	return dispatch.WithBatchSize(n)
}

// WithCooldown sets the pause between batches.
func WithCooldown(d time.Duration) Option {
	return dispatch.WithCooldown(d)
}

// WithMaxAttempts sets the number of sends per recipient.
func WithMaxAttempts(n int) Option {
	return dispatch.WithMaxAttempts(n)
}

// WithBackoff sets the base retry delay.
func WithBackoff(d time.Duration) Option {
	return dispatch.WithBackoff(d)
}

// WithObserver sets progress observers.
func WithObserver(obs ...Observer) Option {
	return dispatch.WithObserver(dispatch.Observers(obs...))
}

// WithLogger logs progress to l.
func WithLogger(l *slog.Logger) Option {
	return dispatch.WithObserver(dispatch.NewLogObserver(l))
}

// LoadRecipients reads a recipient list file.
func LoadRecipients(path string) ([]string, error) {
	return recipients.Load(path)
}

// NewLogTransport returns a transport that logs messages instead of sending them.
func NewLogTransport(l *slog.Logger) Transport {
	return mailer.NewLogTransport(l)
}

// SaveReport writes rep as JSON to every sink.
func SaveReport(ctx context.Context, rep *Report, sinks ...ReportSink) error {
	return report.Save(ctx, rep, sinks...)
}

// Errors
var (
	ErrNoTransport    = dispatch.ErrNoTransport
	ErrNoMessage      = dispatch.ErrNoMessage
	ErrReadRecipients = recipients.ErrReadFailed
	ErrReportNotSaved = report.ErrWriteFailed
	ErrDeliveryFailed = mailer.ErrSendFailed
)

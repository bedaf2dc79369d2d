package dispatch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
	"github.com/dmitrymomot/mailblast/pkg/report"
)

// Dispatcher delivers a message to recipients in batches.
type Dispatcher struct {
	transport   mailer.Transport
	email       *mailer.Email
	observer    Observer
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	batchSize   int
	concurrency int
	cooldown    time.Duration
	maxAttempts int
	backoff     time.Duration
}

// New creates a dispatcher sending email through transport. The email's To
// field is ignored; each recipient gets its own copy.
func New(transport mailer.Transport, email *mailer.Email, opts ...Option) (*Dispatcher, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	if email == nil {
		return nil, ErrNoMessage
	}

	d := &Dispatcher{
		transport:   transport,
		email:       email,
		observer:    NopObserver{},
		now:         time.Now,
		sleep:       sleepContext,
		batchSize:   DefaultBatchSize,
		cooldown:    DefaultCooldown,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Run delivers to every recipient and returns the run report.
// The transport is not closed; that stays with the caller.
func (d *Dispatcher) Run(ctx context.Context, list []string) (*report.Report, error) {
	batches := recipients.Batches(list, d.batchSize)

	rec := report.NewReporter(len(list))
	rec.Start(d.now())
	d.observer.RunStarted(ctx, len(list), len(batches))

	var stopErr error
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			stopErr = context.Cause(ctx)
			abandon(rec, batches[i:], stopErr)
			break
		}

		d.observer.BatchStarted(ctx, i, len(batches), len(batch))
		res := d.runBatch(ctx, i, batch)
		for _, o := range res.Outcomes {
			if o.Succeeded {
				rec.Success(o.Recipient)
			} else {
				rec.Failure(o.Recipient, o.Err)
			}
		}
		d.observer.BatchFinished(ctx, res)

		if i == len(batches)-1 {
			break
		}
		d.observer.CooldownStarted(ctx, d.cooldown)
		if err := d.sleep(ctx, d.cooldown); err != nil {
			stopErr = err
			abandon(rec, batches[i+1:], err)
			break
		}
	}

	rep, err := rec.Finish(d.now())
	if err != nil {
		return rep, err
	}
	d.observer.RunFinished(ctx, rep)
	return rep, stopErr
}

// runBatch delivers to all recipients of a batch concurrently, at most
// d.concurrency at a time when a limit is set, and waits for every outcome.
// Outcomes keep the batch order.
func (d *Dispatcher) runBatch(ctx context.Context, index int, batch []string) BatchResult {
	outcomes := make([]Outcome, len(batch))

	var g errgroup.Group
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}
	for i, r := range batch {
		g.Go(func() error {
			outcomes[i] = d.deliver(ctx, r)
			return nil
		})
	}
	// deliver records failures in outcomes, so Wait has nothing to report.
	_ = g.Wait()

	return BatchResult{Index: index, Outcomes: outcomes}
}

// deliver sends the message to one recipient, retrying with linear backoff.
// It never returns an error; failures end up in the Outcome.
func (d *Dispatcher) deliver(ctx context.Context, recipient string) Outcome {
	msg := d.email.WithRecipient(recipient)
	out := Outcome{Recipient: recipient}

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		out.Attempts = attempt
		receipt, err := d.transport.Send(ctx, msg)
		if err == nil {
			out.Succeeded = true
			out.Err = ""
			if receipt != nil {
				out.MessageID = receipt.MessageID
			}
			d.observer.AttemptFinished(ctx, Attempt{
				Recipient: recipient,
				Number:    attempt,
				MessageID: out.MessageID,
				Final:     true,
			})
			return out
		}

		out.Err = err.Error()
		if attempt == d.maxAttempts {
			d.observer.AttemptFinished(ctx, Attempt{Recipient: recipient, Number: attempt, Err: err, Final: true})
			break
		}

		wait := time.Duration(attempt) * d.backoff
		d.observer.AttemptFinished(ctx, Attempt{Recipient: recipient, Number: attempt, Err: err, Backoff: wait})
		if d.sleep(ctx, wait) != nil {
			break
		}
	}
	return out
}

func abandon(rec *report.Reporter, batches [][]string, cause error) {
	for _, batch := range batches {
		for _, r := range batch {
			rec.Failure(r, cause.Error())
		}
	}
}

package dispatch

import (
	"context"
	"time"
)

const (
	DefaultBatchSize   = 50
	DefaultCooldown    = 60 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBatchSize sets how many recipients are delivered concurrently.
// Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// WithConcurrency caps how many deliveries of a batch run at the same time.
// Zero or a negative value means the whole batch runs at once.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		d.concurrency = max(n, 0)
	}
}

// WithCooldown sets the pause between consecutive batches.
func WithCooldown(c time.Duration) Option {
	return func(d *Dispatcher) {
		if c >= 0 {
			d.cooldown = c
		}
	}
}

// WithMaxAttempts sets the number of sends per recipient, retries included.
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithBackoff sets the base retry delay. The wait after attempt k is k*base.
func WithBackoff(base time.Duration) Option {
	return func(d *Dispatcher) {
		if base >= 0 {
			d.backoff = base
		}
	}
}

// WithObserver sets the progress observer. Use Observers to combine several.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observer = o
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithSleep overrides how the dispatcher waits for backoffs and cooldowns.
// The function must return a non-nil error when ctx is done.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(d *Dispatcher) {
		if sleep != nil {
			d.sleep = sleep
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}

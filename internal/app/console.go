package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrymomot/mailblast/pkg/dispatch"
	"github.com/dmitrymomot/mailblast/pkg/report"
)

// console prints human-readable progress. Attempts arrive from many
// goroutines, so every write holds the lock.
type console struct {
	dispatch.NopObserver
	mu          sync.Mutex
	w           io.Writer
	maxAttempts int
}

func newConsole(w io.Writer, maxAttempts int) *console {
	return &console{w: w, maxAttempts: maxAttempts}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func (c *console) RunStarted(_ context.Context, recipients, _ int) {
	c.printf("Starting to process %d emails...\n", recipients)
}

func (c *console) BatchStarted(_ context.Context, index, batches, _ int) {
	c.printf("\nProcessing batch %d/%d\n", index+1, batches)
}

func (c *console) AttemptFinished(_ context.Context, a dispatch.Attempt) {
	if a.Err == nil {
		c.printf("✓ Email sent successfully to %s\n", a.Recipient)
		return
	}
	c.printf("✗ Error sending to %s: %v\n", a.Recipient, a.Err)
	if !a.Final {
		c.printf("Retrying %s (Attempt %d/%d)...\n", a.Recipient, a.Number+1, c.maxAttempts)
	}
}

func (c *console) CooldownStarted(_ context.Context, d time.Duration) {
	c.printf("\nWaiting %d seconds before next batch...\n", int(d.Seconds()))
}

// summary prints the final accounting. saveErr is the report write result.
func (c *console) summary(rep *report.Report, locations []string, saveErr error) {
	c.printf("\nEmail sending completed!\n")
	c.printf("Successfully sent: %d\n", rep.SuccessCount)
	c.printf("Failed: %d\n", rep.FailureCount)
	c.printf("Time taken: %s minutes\n", rep.Elapsed())
	if saveErr != nil {
		c.printf("Failed to save report: %v\n", saveErr)
		return
	}
	for _, loc := range locations {
		c.printf("Detailed report saved to %s\n", loc)
	}
}

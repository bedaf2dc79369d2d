package dispatch

import "time"

// Outcome is the final result of delivering to one recipient.
type Outcome struct {
	Recipient string
	MessageID string
	// Err is the last transport error message. Empty on success.
	Err       string
	Attempts  int
	Succeeded bool
}

// BatchResult holds the outcomes of one batch in recipient order.
type BatchResult struct {
	Index    int // zero-based
	Outcomes []Outcome
}

// Succeeded counts successful outcomes in the batch.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}

// Attempt describes a single send to a single recipient.
type Attempt struct {
	Err       error
	Recipient string
	MessageID string
	Number    int
	// Backoff is the wait before the next attempt. Zero when Final.
	Backoff time.Duration
	// Final is set when no further attempt follows.
	Final bool
}

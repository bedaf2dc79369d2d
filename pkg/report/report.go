package report

import (
	"fmt"
	"time"
)

// Failure is one recipient that failed every delivery attempt.
type Failure struct {
	Recipient string `json:"email"`
	Error     string `json:"error"`
}

// Report is the final accounting of a run.
type Report struct {
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Failures        []Failure `json:"failedEmails"`
	TotalRecipients int       `json:"totalEmails"`
	SuccessCount    int       `json:"successfulSent"`
	FailureCount    int       `json:"failedSent"`
	ElapsedMinutes  float64   `json:"timeElapsed"`
}

// Elapsed formats ElapsedMinutes with two decimals, e.g. "1.07".
func (r *Report) Elapsed() string {
	return fmt.Sprintf("%.2f", r.ElapsedMinutes)
}

// Reporter accumulates outcomes for one run. It is not safe for concurrent use.
type Reporter struct {
	startedAt time.Time
	total     int
	succeeded int
	failures  []Failure
}

// NewReporter creates a reporter for a run over total recipients.
func NewReporter(total int) *Reporter {
	return &Reporter{total: total, failures: make([]Failure, 0)}
}

// Start records the run start time.
func (r *Reporter) Start(now time.Time) {
	r.startedAt = now
}

// Success records a delivered recipient.
func (r *Reporter) Success(string) {
	r.succeeded++
}

// Failure records a recipient that could not be delivered.
func (r *Reporter) Failure(recipient, reason string) {
	r.failures = append(r.failures, Failure{Recipient: recipient, Error: reason})
}

// Recorded returns how many outcomes have been recorded so far.
func (r *Reporter) Recorded() int {
	return r.succeeded + len(r.failures)
}

// Finish stamps the end time and returns the report.
// ErrUnbalanced is returned together with the report when some recipients
// were never recorded or were recorded twice.
func (r *Reporter) Finish(now time.Time) (*Report, error) {
	if r.startedAt.IsZero() {
		return nil, ErrNotStarted
	}

	rep := &Report{
		StartedAt:       r.startedAt,
		FinishedAt:      now,
		Failures:        append(make([]Failure, 0, len(r.failures)), r.failures...),
		TotalRecipients: r.total,
		SuccessCount:    r.succeeded,
		FailureCount:    len(r.failures),
		ElapsedMinutes:  now.Sub(r.startedAt).Minutes(),
	}

	if rep.SuccessCount+rep.FailureCount != rep.TotalRecipients {
		return rep, fmt.Errorf("%w: %d succeeded + %d failed != %d",
			ErrUnbalanced, rep.SuccessCount, rep.FailureCount, rep.TotalRecipients)
	}
	return rep, nil
}

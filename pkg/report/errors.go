package report

import "errors"

var (
	// ErrWriteFailed is returned when a sink could not persist the report.
	ErrWriteFailed = errors.New("report: failed to write report")

	// ErrNotStarted is returned by Finish when Start was never called.
	ErrNotStarted = errors.New("report: run was not started")

	// ErrUnbalanced is returned when recorded outcomes do not cover every recipient.
	ErrUnbalanced = errors.New("report: outcomes do not match recipient count")
)

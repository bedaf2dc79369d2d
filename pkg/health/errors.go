package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is returned when a check exceeds its timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)

package app

import "errors"

var (
	// ErrSetup wraps every failure that prevents the run from starting.
	ErrSetup = errors.New("app: setup failed")

	// ErrInterrupted is returned when the run was cancelled before all
	// recipients were attempted. The report is still written.
	ErrInterrupted = errors.New("app: run interrupted")
)

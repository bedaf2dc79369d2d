package dispatch

import "errors"

var (
	ErrNoTransport = errors.New("dispatch: transport is required")
	ErrNoMessage   = errors.New("dispatch: message is required")
)

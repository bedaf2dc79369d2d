package smtp

import "errors"

var (
	// ErrMissingHost is returned when no relay host is configured.
	ErrMissingHost = errors.New("smtp: missing host")

	// ErrMissingUsername is returned when no sending account is configured.
	ErrMissingUsername = errors.New("smtp: missing username")

	// ErrMissingCredentials is returned when neither a token source nor a password is given.
	ErrMissingCredentials = errors.New("smtp: missing credentials")

	// ErrAuthFailed is returned when an access token cannot be obtained.
	ErrAuthFailed = errors.New("smtp: authentication failed")

	// ErrInvalidMessage is returned when an email cannot be converted to a message.
	ErrInvalidMessage = errors.New("smtp: invalid message")
)

package mailer

import "context"

// Transport is the delivery capability the dispatcher consumes.
// Implementations must be safe for concurrent use: a batch calls Send from
// many goroutines at once.
type Transport interface {
	// Send delivers one message. A non-nil error means the message was not
	// accepted and may be retried.
	Send(ctx context.Context, email *Email) (*Receipt, error)

	// Close releases the transport. It is called once, after the last Send.
	Close() error
}

// Receipt is what a transport reports for an accepted message.
type Receipt struct {
	MessageID string
}

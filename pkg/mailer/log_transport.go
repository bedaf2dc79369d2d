package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// LogTransport accepts every message and only logs it. Used for dry runs.
type LogTransport struct {
	log  *slog.Logger
	sent atomic.Int64
}

// NewLogTransport creates a dry-run transport.
func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

// Send implements Transport.
func (t *LogTransport) Send(ctx context.Context, email *Email) (*Receipt, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	id := fmt.Sprintf("<%s@dry-run>", uuid.NewString())
	t.sent.Add(1)
	t.log.InfoContext(ctx, "dry run: message not sent",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.Int("attachments", len(email.Attachments)),
		slog.String("message_id", id),
	)
	return &Receipt{MessageID: id}, nil
}

// Sent returns how many messages were accepted.
func (t *LogTransport) Sent() int64 {
	return t.sent.Load()
}

// Close implements Transport.
func (t *LogTransport) Close() error {
	t.log.Info("dry run finished", slog.Int64("accepted", t.sent.Load()))
	return nil
}

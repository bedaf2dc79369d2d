// Package resend implements mailer.Transport using the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("resend: missing API key")

	// ErrMissingSender is returned when no sender address is configured.
	ErrMissingSender = errors.New("resend: missing sender email")
)

// Option configures a Sender.
type Option func(*resend.Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(rc *resend.Client) {
		rc.HTTPClient = c
	}
}

// Sender implements mailer.Transport using the Resend API.
// The API client is stateless, so Close is a no-op.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.SenderEmail == "" {
		return nil, ErrMissingSender
	}

	client := resend.NewClient(cfg.APIKey)
	for _, opt := range opts {
		opt(client)
	}

	return &Sender{client: client, config: cfg}, nil
}

// Send implements mailer.Transport.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	if err := email.Validate(); err != nil {
		return nil, errors.Join(mailer.ErrSendFailed, err)
	}

	resp, err := s.client.Emails.SendWithContext(ctx, s.buildRequest(email))
	if err != nil {
		return nil, errors.Join(mailer.ErrSendFailed, fmt.Errorf("resend: %w", err))
	}

	return &mailer.Receipt{MessageID: resp.Id}, nil
}

// Close implements mailer.Transport.
func (s *Sender) Close() error { return nil }

func (s *Sender) buildRequest(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = make([]*resend.Attachment, len(email.Attachments))
		for i, a := range email.Attachments {
			req.Attachments[i] = &resend.Attachment{
				Filename:    a.Filename,
				Content:     a.Content,
				ContentType: a.ContentType,
			}
		}
	}

	return req
}

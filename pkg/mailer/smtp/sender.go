package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/mailblast/pkg/logger"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

// Sender implements mailer.Transport over one pooled SMTP connection.
//
// Sends are serialized on that connection and paced by a rate limiter, so
// callers may fan out freely. A failed send drops the connection; the next
// send redials and, with XOAUTH2, re-authenticates with a fresh token.
type Sender struct {
	cfg     Config
	client  *mail.Client
	tokens  oauth2.TokenSource
	limiter *rate.Limiter
	log     *slog.Logger
	idHost  string

	mu        sync.Mutex
	connected bool
}

// New creates an SMTP sender. No connection is made until the first Send.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.Username == "" {
		return nil, ErrMissingUsername
	}

	s := &Sender{cfg: cfg, log: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	if s.tokens == nil && cfg.Password == "" {
		return nil, ErrMissingCredentials
	}
	if s.limiter == nil {
		s.limiter = newLimiter(cfg.MaxRate)
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithUsername(cfg.Username),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, mail.WithTimeout(cfg.Timeout))
	}
	if s.tokens != nil {
		clientOpts = append(clientOpts, mail.WithSMTPAuth(mail.SMTPAuthXOAUTH2))
	} else {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: create client: %w", err)
	}
	s.client = client
	s.idHost = messageIDHost(cfg.Username, cfg.Host)

	return s, nil
}

// newLimiter allows rps messages per second with a burst of one second's worth.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
}

// Send implements mailer.Transport.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	msg, id, err := s.buildMsg(email)
	if err != nil {
		return nil, errors.Join(mailer.ErrSendFailed, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Join(mailer.ErrSendFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.connect(ctx); err != nil {
		return nil, errors.Join(mailer.ErrSendFailed, err)
	}
	if err := s.client.Send(msg); err != nil {
		s.disconnect()
		return nil, errors.Join(mailer.ErrSendFailed, err)
	}

	return &mailer.Receipt{MessageID: id}, nil
}

// Ping dials and authenticates without sending. The connection stays open
// for the first Send.
func (s *Sender) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connect(ctx)
}

// connect dials the relay unless a connection is already open. Caller holds mu.
func (s *Sender) connect(ctx context.Context) error {
	if s.connected {
		return nil
	}
	if s.tokens != nil {
		tok, err := s.tokens.Token()
		if err != nil {
			return errors.Join(ErrAuthFailed, err)
		}
		s.client.SetPassword(tok.AccessToken)
	}
	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	s.connected = true
	s.log.DebugContext(ctx, "smtp connection established", slog.String("host", s.cfg.Host))
	return nil
}

// disconnect drops the connection after a failure. Caller holds mu.
func (s *Sender) disconnect() {
	if !s.connected {
		return
	}
	s.connected = false
	if err := s.client.Close(); err != nil {
		s.log.Debug("smtp close after failure", slog.String("error", err.Error()))
	}
}

// Close implements mailer.Transport.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	s.connected = false
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("smtp: close: %w", err)
	}
	return nil
}

// buildMsg converts email into a go-mail message with a fresh Message-ID.
// The returned id is the header value, angle brackets included.
func (s *Sender) buildMsg(email *mailer.Email) (*mail.Msg, string, error) {
	if err := email.Validate(); err != nil {
		return nil, "", errors.Join(ErrInvalidMessage, err)
	}

	m := mail.NewMsg()

	from := email.From
	if from == "" {
		from = mailer.Recipient(s.cfg.SenderName, s.cfg.Username)
	}
	if err := m.From(from); err != nil {
		return nil, "", errors.Join(ErrInvalidMessage, err)
	}
	if err := m.To(email.To...); err != nil {
		return nil, "", errors.Join(ErrInvalidMessage, err)
	}
	if email.ReplyTo != "" {
		if err := m.ReplyTo(email.ReplyTo); err != nil {
			return nil, "", errors.Join(ErrInvalidMessage, err)
		}
	}
	for k, v := range email.Headers {
		m.SetGenHeader(mail.Header(k), v)
	}

	m.Subject(email.Subject)
	m.SetDate()

	id := uuid.NewString() + "@" + s.idHost
	m.SetMessageIDWithValue(id)

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBodyString(mail.TypeTextPlain, email.Text)
		m.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.Text != "":
		m.SetBodyString(mail.TypeTextPlain, email.Text)
	default:
		m.SetBodyString(mail.TypeTextHTML, email.HTML)
	}

	for _, a := range email.Attachments {
		var fileOpts []mail.FileOption
		if a.ContentType != "" {
			fileOpts = append(fileOpts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Content), fileOpts...); err != nil {
			return nil, "", errors.Join(ErrInvalidMessage, fmt.Errorf("attach %s: %w", a.Filename, err))
		}
	}

	return m, "<" + id + ">", nil
}

// messageIDHost picks the domain of the sending account for Message-IDs.
func messageIDHost(username, host string) string {
	if i := strings.LastIndex(username, "@"); i >= 0 && i < len(username)-1 {
		return username[i+1:]
	}
	return host
}

package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/mailblast/pkg/sanitizer"
)

// ComposeOption configures a Composer.
type ComposeOption func(*Composer)

// WithFallbackSubject sets the subject used when the message has none.
func WithFallbackSubject(subject string) ComposeOption {
	return func(c *Composer) {
		c.fallbackSubject = subject
	}
}

// WithFrom sets the sender address placed on composed emails.
func WithFrom(from string) ComposeOption {
	return func(c *Composer) {
		c.from = from
	}
}

// WithTextOnly disables the HTML alternative part.
func WithTextOnly() ComposeOption {
	return func(c *Composer) {
		c.textOnly = true
	}
}

// Composer builds the Email sent to every recipient of a run.
type Composer struct {
	md goldmark.Markdown

	fallbackSubject string
	from            string
	textOnly        bool
}

// NewComposer creates a composer. Rendered HTML goes through
// sanitizer.HTML and the subject through sanitizer.Header.
func NewComposer(opts ...ComposeOption) *Composer {
	c := &Composer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose parses content and returns an Email without recipients.
// Attachments are appended to the result as given.
func (c *Composer) Compose(content []byte, attachments ...Attachment) (*Email, error) {
	msg, err := ParseMessage(content)
	if err != nil {
		return nil, err
	}

	subject, ok := msg.Subject()
	if !ok {
		subject = c.fallbackSubject
	}
	subject = sanitizer.Header(subject)
	if subject == "" {
		return nil, ErrNoSubject
	}

	text := strings.TrimSpace(msg.Body)
	if text == "" {
		return nil, ErrNoContent
	}

	email := &Email{
		Subject:     subject,
		Text:        text + "\n",
		From:        c.from,
		Attachments: attachments,
	}

	if !c.textOnly {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(msg.Body), &buf); err != nil {
			return nil, errors.Join(ErrRenderFailed, err)
		}
		email.HTML = sanitizer.HTML(buf.String())
	}

	return email, nil
}

// ComposeFile reads the message file at path and composes it.
func (c *Composer) ComposeFile(path string, attachments ...Attachment) (*Email, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrMessageNotFound, fmt.Errorf("read %s: %w", path, err))
	}
	return c.Compose(content, attachments...)
}

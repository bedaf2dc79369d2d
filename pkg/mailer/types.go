package mailer

import "fmt"

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers     map[string]string // Custom headers
	Subject     string            // Email subject
	HTML        string            // HTML alternative
	Text        string            // Plain text body
	From        string            // Override default sender (if provider allows)
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	Attachments []Attachment      // File attachments
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	Content     []byte // Raw file content
}

// WithRecipient returns a shallow copy of e addressed to a single recipient.
// Headers and attachments are shared with e and must not be mutated.
func (e *Email) WithRecipient(addr string) *Email {
	cp := *e
	cp.To = []string{addr}
	return &cp
}

// Validate reports whether e is complete enough to hand to a Transport.
func (e *Email) Validate() error {
	if len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.Text == "" && e.HTML == "" {
		return ErrNoContent
	}
	return nil
}

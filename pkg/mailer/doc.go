// Package mailer defines the message model and the transport seam used by the
// bulk dispatcher.
//
// The package separates message composition from delivery. A message is
// composed once from a markdown file with optional YAML frontmatter and then
// copied per recipient; delivery goes through a Transport, which providers
// implement.
//
// # Architecture
//
//   - Email: a fully prepared message (subject, text, HTML, attachments)
//   - Transport: sends one Email and returns a Receipt; closed once per run
//   - Composer: turns markdown with frontmatter into an Email
//
// Built-in transports live in subpackages:
//
//   - mailer/smtp: authenticated SMTP relay (XOAUTH2 or PLAIN) with a single
//     pooled connection and an outbound rate ceiling
//   - mailer/resend: the Resend HTTP API
//
// LogTransport is a dry-run transport that only logs.
//
// # Message files
//
//	---
//	Subject: Application for Software Developer position
//	---
//
//	Dear Hiring Manager,
//
//	I am writing to express my interest in...
//
// The trimmed body is sent as the plain-text part and, rendered to HTML, as
// the alternative part. The composer does not execute templates: the same
// message goes to every recipient.
//
// # Custom transports
//
//	type MyTransport struct{}
//
//	func (t *MyTransport) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
//		// deliver
//		return &mailer.Receipt{MessageID: "<id@example.com>"}, nil
//	}
//
//	func (t *MyTransport) Close() error { return nil }
//
// # Errors
//
//   - ErrNoRecipient: No recipient specified
//   - ErrNoSubject: No subject provided
//   - ErrNoContent: Neither text nor HTML body
//   - ErrMessageNotFound: Message file could not be read
//   - ErrInvalidFrontmatter: Invalid YAML frontmatter
//   - ErrRenderFailed: Markdown conversion failed
//   - ErrAttachmentNotFound: Attachment could not be loaded
//   - ErrSendFailed: Delivery failed
package mailer

package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have a text or HTML body")

	// ErrMessageNotFound indicates the message file could not be read.
	ErrMessageNotFound = errors.New("message file not found")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrRenderFailed indicates markdown rendering failed.
	ErrRenderFailed = errors.New("failed to render message")

	// ErrAttachmentNotFound indicates the attachment could not be loaded.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)

package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelimiter = []byte("---")

// Message is a message file split into frontmatter metadata and markdown body.
type Message struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the "Subject" (or "subject") frontmatter key, if set.
func (m *Message) Subject() (string, bool) {
	for _, key := range []string{"Subject", "subject"} {
		if s, ok := m.Metadata[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// ParseMessage splits content into YAML frontmatter and markdown body.
// Content without a leading "---" is treated as body only.
func ParseMessage(content []byte) (*Message, error) {
	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return &Message{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, frontmatterDelimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end, bodyStart := closingDelimiter(rest)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	head := rest[:end]
	body := rest[bodyStart:]

	meta := map[string]any{}
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Message{Metadata: meta, Body: string(body)}, nil
}

// closingDelimiter finds the first line consisting of "---" (trailing
// whitespace allowed). It returns the offset of that line and of the line
// after it, or -1 when there is none.
func closingDelimiter(b []byte) (int, int) {
	for off := 0; off < len(b); {
		line, next := b[off:], len(b)
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, next = line[:i], off+i+1
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), frontmatterDelimiter) {
			return off, next
		}
		off = next
	}
	return -1, -1
}

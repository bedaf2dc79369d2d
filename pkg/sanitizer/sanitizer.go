// Package sanitizer cleans user-authored content before it goes into an email.
package sanitizer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// UGC covers what markdown renders to: headings, lists, tables, links, images
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// HTML sanitizes a rendered message body for the HTML alternative part.
// Scripts, event handlers and javascript: URLs are removed; absolute links
// open in a new window.
func HTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// HTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func HTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}

// Header makes s safe for a single-line header value such as Subject.
// Line breaks and other control characters become spaces and runs of
// whitespace collapse to one.
func Header(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

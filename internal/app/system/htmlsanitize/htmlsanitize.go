// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from user-supplied rich text
// (note content, descriptions) before it is persisted.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows common formatting (paragraphs, emphasis, lists, links) and
// removes scripts, event handlers, and style injection.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

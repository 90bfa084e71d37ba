// Package content normalizes text coming from feeds and paper sources
package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxSummaryLen is the maximum length of summary or abstract, in characters
const MaxSummaryLen = 300

const ellipsis = "..."

var (
	strictPolicy = bluemonday.StrictPolicy()
	spacesRe     = regexp.MustCompile(`\s+`)
)

// Plain strips markup, decodes entities and collapses whitespace.
// Markup which was entity-escaped in the source, like "&lt;b&gt;", is stripped as well.
func Plain(text string) string {
	if text == "" {
		return ""
	}
	stripped := html.UnescapeString(strictPolicy.Sanitize(text))
	stripped = html.UnescapeString(strictPolicy.Sanitize(stripped)) // tags uncovered by decoding
	return strings.TrimSpace(spacesRe.ReplaceAllString(stripped, " "))
}

// Truncate cuts text longer than limit characters to limit-3 characters plus ellipsis
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := limit - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + ellipsis
}

// Summary makes a display-ready summary: plain text capped at MaxSummaryLen
func Summary(text string) string {
	return Truncate(Plain(text), MaxSummaryLen)
}

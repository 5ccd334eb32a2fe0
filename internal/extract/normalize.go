package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Normalize strips inline tag shapes, collapses whitespace runs to single
// spaces, trims the ends and composes the result to NFC so that code point
// counts agree between documents produced by different tools.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllString(s, "")
	return norm.NFC.String(collapseSpaces(s))
}

// collapseSpaces turns every run of Unicode whitespace into a single space
// and drops leading and trailing whitespace.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

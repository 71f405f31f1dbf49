package common

import (
	"strings"
	"unicode/utf8"
)

// Sanitize reduces untrusted text to printable ASCII: replacement characters
// and any other non-ASCII bytes are dropped, as are control characters, and the
// result is trimmed. HTML escaping is still left to the template layer.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError || r > 0x7E {
			continue
		}
		if r < 0x20 && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

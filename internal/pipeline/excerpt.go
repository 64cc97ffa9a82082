package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// excerptEllipsis terminates a truncated excerpt.
const excerptEllipsis = "..."

// tagSpan matches simple <...> spans. Not a markup parser: it strips
// tag-like text, nothing more.
var tagSpan = regexp.MustCompile(`<[^>]*>`)

// Excerpt derives a plain-text preview from body: tag spans removed,
// characters outside word characters, whitespace and ".,!?-" removed, then
// trimmed. A result longer than maxLen runes is cut at the last whitespace
// boundary at or before maxLen (hard cut when the window holds a single
// word) and the ellipsis marker appended.
func Excerpt(body string, maxLen int) string {
	plain := tagSpan.ReplaceAllString(body, "")
	plain = strings.TrimSpace(keepPlain(plain))

	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	cut := maxLen
	for i := maxLen; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	out := strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
	return out + excerptEllipsis
}

func keepPlain(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '.' || r == ',' || r == '!' || r == '?' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

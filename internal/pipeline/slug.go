package pipeline

import "strings"

// Slugify maps an arbitrary identifier to a URL-safe slug: lowercased, every
// run of characters outside [a-z0-9-] collapsed into a single hyphen, no
// hyphen at either end. Total and idempotent. The result may be empty; an
// empty slug is for the caller to reject.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

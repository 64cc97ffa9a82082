package pipeline

import (
	"strings"
	"unicode"
)

// NormalizeTags produces the canonical tag list for one record. Entries are
// trimmed and lowercased; blank entries and entries containing characters
// outside [a-z0-9-] and whitespace are dropped; the survivors are cut to the
// first max entries in source order. Duplicates are kept as authored.
func NormalizeTags(raw []string, max int) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || !validTag(t) {
			continue
		}
		tags = append(tags, t)
	}
	if max >= 0 && len(tags) > max {
		tags = tags[:max]
	}
	return tags
}

func validTag(t string) bool {
	for _, r := range t {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

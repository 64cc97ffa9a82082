package pipeline

import "strings"

// CountWords counts whitespace-separated words in body, scanning at most
// maxScanRunes runes. The cap bounds the cost of pathological inputs; zero
// or negative means unbounded.
func CountWords(body string, maxScanRunes int) int {
	if maxScanRunes > 0 {
		seen := 0
		for i := range body {
			if seen == maxScanRunes {
				body = body[:i]
				break
			}
			seen++
		}
	}
	return len(strings.Fields(body))
}

// ReadingTime converts a word count into whole minutes at wpm words per
// minute, rounding up and never dropping below one.
func ReadingTime(words, wpm int) int {
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

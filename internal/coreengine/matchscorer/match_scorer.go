package matchscorer

import (
	"strings"
)

// Match decides whether an ASR transcript counts as a successful pronunciation
// of the expected label. Both strings are compared case-insensitively after
// trimming surrounding whitespace; punctuation is left untouched.
//
// A match is declared when either:
//  1. the normalized label appears as a literal substring of the normalized
//     transcript (exact match, or label embedded in a longer sentence), or
//  2. the label has multiple whitespace-separated words and every one of them
//     appears somewhere in the normalized transcript (speaker may reorder words
//     or insert others in between).
//
// An empty or whitespace-only transcript never matches. The expected label is
// assumed non-empty after trimming; item ingestion rejects empty labels before
// a session starts.
func Match(expectedLabel string, transcript string) bool {
	label := strings.ToLower(strings.TrimSpace(expectedLabel))
	text := strings.ToLower(strings.TrimSpace(transcript))

	if text == "" {
		return false
	}

	if strings.Contains(text, label) {
		return true
	}

	words := strings.Fields(label)
	if len(words) < 2 {
		// Single-word labels are fully covered by the substring check above.
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

package extract

import (
	"regexp"
	"strings"
)

// addressTail matches the ", ST 12345" or ", ST 12345-6789" suffix that every
// accepted address must carry. The state code is any two letters.
var addressTail = regexp.MustCompile(`(?i),\s*[A-Za-z]{2}\s+\d{5}(-\d{4})?$`)

// IsValidAddress reports whether candidate looks like a complete mailing
// address, e.g. "2324 REHBERG LN BILLINGS, MT 59102". Internal whitespace is
// collapsed before matching.
func IsValidAddress(candidate string) bool {
	candidate = CleanText(candidate)
	if len(candidate) < 10 {
		return false
	}
	return addressTail.MatchString(candidate)
}

// CleanText removes extra whitespace from text
func CleanText(text string) string {
	// Replace newlines, tabs, and non-breaking spaces with plain spaces
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, " ", " ")

	// Replace multiple spaces with a single space
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	return strings.TrimSpace(text)
}

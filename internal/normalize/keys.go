// Package normalize merges partial job records into one canonical record
// and provides the key normalization shared with the duplicate guard.
package normalize

import (
	"regexp"
	"strings"
)

var innerSpaceRe = regexp.MustCompile(`\s+`)

// Key normalizes a company or title string for comparison: lowercase,
// trimmed, inner whitespace collapsed. Formatting differences between two
// postings for the same role must never produce a false negative in the
// duplicate guard.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return innerSpaceRe.ReplaceAllString(s, " ")
}

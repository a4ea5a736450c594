package common

import (
	"strings"
	"unicode"
)

// Slugify converts a display name into a url-safe identifier:
// lowercased, symbols stripped, whitespace runs collapsed into a
// single dash.
func Slugify(input string) string {
	var b strings.Builder
	lastWasDash := true // drops leading dashes
	for _, r := range strings.ToLower(input) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastWasDash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

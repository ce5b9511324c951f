package service

import (
	"strings"
	"unicode"
)

// slugify lowercases, strips accents-free non-alphanumerics and joins
// words with dashes; mirrors the usual web-framework slug behavior.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9 -]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Make derives a URL-safe slug from a display name: lowercase, spaces to
// hyphens, everything else stripped. Uniqueness is not guaranteed.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Denormalize reverses Make far enough for name comparison: hyphens back to
// spaces, lowercased. The result is compared case-insensitively against
// display names, not shown to users.
func Denormalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", " "))
}

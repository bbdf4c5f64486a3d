// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugSpaces    = regexp.MustCompile(`\s+`)
	slugInvalid   = regexp.MustCompile(`[^\w-]+`)
	slugRepeating = regexp.MustCompile(`--+`)
)

// Slugify converts text into a URL-friendly slug.
// "Hello World!" -> "hello-world"
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugRepeating.ReplaceAllString(s, "-")
	return s
}

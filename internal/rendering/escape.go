package rendering

import (
	"strings"
	"unicode"
)

// Flatten collapses line breaks, tabs and other control characters into single
// spaces so every entry renders as exactly one bullet line.
func Flatten(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	space := false
	for _, r := range text {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && result.Len() > 0 {
			result.WriteByte(' ')
		}
		space = false
		result.WriteRune(r)
	}

	return result.String()
}

package validators

import "strings"

// SanitizeString trims whitespace and caps the rune length. Truncation
// is rune-aware so multibyte category and search terms stay intact.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}

package validation

import "strings"

// SanitizeInput drops NUL bytes and control characters other than tab,
// newline and carriage return.
func SanitizeInput(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r != 127 || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, input)
}

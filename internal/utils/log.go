package utils

import "strings"

// TruncateForLog collapses whitespace runs in s to single spaces and shortens
// the result to limit runes, appending "..." when something was cut.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

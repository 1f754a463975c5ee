// Package utils holds small helpers shared by the AI and analysis layers.
package utils

import "strings"

// TruncateForLog trims s and keeps at most limit runes of it, marking a cut with "...".
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}

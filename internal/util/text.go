package util

import (
	"strings"
)

// ContainsAny returns true if text contains any of the needles verbatim.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// TruncateRunes cuts s to at most n runes, appending an ellipsis when it cuts.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// Package strutil provides string helpers for terminal output.
package strutil

import (
	"charm.land/lipgloss/v2"
)

// Truncate shortens s to at most width terminal cells, marking the cut with
// an ellipsis. Strings that already fit are returned unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed. Width is measured in terminal cells so Hangul counts double.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, "...")
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints text onto one pane background. lipgloss resets the
// background after every styled segment, so every gap between segments must
// be painted too or the terminal colour shows through.
type surface struct {
	bg   lipgloss.Color
	base lipgloss.Style
}

func onSurface(color string) surface {
	bg := lipgloss.Color(color)
	return surface{bg: bg, base: lipgloss.NewStyle().Background(bg)}
}

// paint renders text in style on the surface. Runs of spaces are painted with
// the bare background so underline or bold never spills into the gaps.
func (s surface) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	ink := style.Background(s.bg)
	var b strings.Builder
	for text != "" {
		n := runLength(text)
		if text[0] == ' ' {
			b.WriteString(s.base.Render(text[:n]))
		} else {
			b.WriteString(ink.Render(text[:n]))
		}
		text = text[n:]
	}
	return b.String()
}

// runLength returns the byte length of the leading run of spaces or of
// non-spaces.
func runLength(text string) int {
	space := text[0] == ' '
	for i, r := range text {
		if (r == ' ') != space {
			return i
		}
	}
	return len(text)
}

func (s surface) pad(n int) string {
	if n <= 0 {
		return ""
	}
	return s.base.Render(strings.Repeat(" ", n))
}

func (s surface) glyph(text string) string {
	return s.base.Render(text)
}

// pair renders "label value" with one painted space between.
func (s surface) pair(label string, labelStyle lipgloss.Style, value string, valueStyle lipgloss.Style) string {
	return s.paint(label, labelStyle) + s.pad(1) + s.paint(value, valueStyle)
}

// join places pre-painted parts gap cells apart.
func (s surface) join(parts []string, gap int) string {
	return strings.Join(parts, s.pad(gap))
}

// rule draws a horizontal divider at least one cell wide.
func (s surface) rule(width int, style lipgloss.Style) string {
	return s.paint(strings.Repeat("─", max(width, 1)), style)
}

// fill pads content so the background reaches the pane edge.
func (s surface) fill(content string, width int) string {
	return s.base.Width(width).Render(content)
}

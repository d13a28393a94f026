package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpTitles names the groups returned by keyMap.FullHelp, in order.
var helpTitles = []string{"Views", "Navigation", "Paging", "Board", "Post", "Forms", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	groups := m.keys.FullHelp()
	sections := make([]string, 0, len(groups))
	for i, group := range groups {
		var section strings.Builder
		if i < len(helpTitles) {
			section.WriteString(styles.AccentText.Bold(true).Render(helpTitles[i]))
			section.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			section.WriteString(keyStyle.Render(h.Key))
			section.WriteString(styles.Text.Render(h.Desc))
			section.WriteString("\n")
		}
		sections = append(sections, section.String())
	}

	// Two columns keep the overlay within short terminals.
	half := (len(sections) + 1) / 2
	colStyle := lipgloss.NewStyle().Width(34)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		colStyle.Render(strings.Join(sections[:half], "\n")),
		colStyle.Render(strings.Join(sections[half:], "\n")),
	))

	return m.renderModal(b.String(), 74)
}

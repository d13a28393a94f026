package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.pad(2)

	parts := []string{bg.paint("splitboard", styles.Logo)}
	parts = append(parts, m.connectionStatus(styles, bg))

	if m.snapshot.Loaded {
		parts = append(parts,
			bg.pair("게시글", styles.MutedText, fmt.Sprintf("%d", m.stats.Total), styles.Text),
			bg.pair("모집 중", styles.MutedText, fmt.Sprintf("%d", m.stats.Open), styles.SuccessText),
		)
		if !compact {
			parts = append(parts,
				bg.pair("완료", styles.MutedText, fmt.Sprintf("%d", m.stats.Completed), styles.FaintText))
		}
	}

	if m.inFlight > 0 {
		parts = append(parts, bg.paint("처리 중...", styles.WarningText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.pair("갱신", styles.FaintText,
			m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if !compact && m.endpoint != "" {
		parts = append(parts, bg.paint(truncate(m.endpoint, 40), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.join(parts, 2) + sep)
}

// connectionStatus summarises how the last polls went.
func (m Model) connectionStatus(styles Styles, bg surface) string {
	switch {
	case m.snapshot.IsOffline():
		return bg.paint("● OFFLINE", styles.DangerText) + bg.pad(1) +
			bg.paint("재시도 중", styles.WarningText)
	case m.snapshot.LastError != nil:
		return bg.paint("● 지연", styles.WarningText)
	case !m.snapshot.Loaded:
		return bg.paint("연결 중...", styles.WarningText.Bold(true))
	default:
		return bg.paint("● LIVE", styles.SuccessText)
	}
}

// renderCommandBar renders the command hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{{"c", "Comment"}}
		if m.detail.CanComplete {
			commands = append(commands, cmd{"x", "Complete"})
		}
		commands = append(commands,
			cmd{"e", "Edit"},
			cmd{"d", "Delete"},
			cmd{"j/k", "Scroll"},
			cmd{"esc", "Back"},
			cmd{"?", "More"},
		)
	case ViewStats:
		commands = []cmd{
			{"b", "Board"},
			{"L", "Diagnostics"},
			{"r", "Refresh"},
			{"Tab", "Next"},
			{"?", "More"},
		}
	case ViewDiagnostics:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"G", "Latest"},
			{"b", "Board"},
			{"Tab", "Next"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"f", m.filterLabel()},
			{"/", "Search"},
			{"n", "New"},
			{"enter", "Open"},
			{"r", "Refresh"},
			{"s", "Stats"},
			{"?", "More"},
		}
	}

	colon := bg.glyph(":")
	sep := bg.pad(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.paint(c.key, styles.AccentText)+colon+bg.paint(c.desc, styles.MutedText))
	}

	if m.mode == inputSearch {
		segments = append(segments, m.searchInput.View())
	} else if m.currentView == ViewBoard && m.rec != nil && m.rec.Search() != "" {
		segments = append(segments, bg.paint("/"+truncate(m.rec.Search(), 18), styles.AccentText))
	}

	segments = append(segments,
		bg.paint("T", styles.AccentText)+colon+bg.paint(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderFooter shows the current notice, or the short key help when
// there is nothing to report.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onSurface(m.theme.Surface)

	var content string
	switch {
	case m.notice.Text != "" && m.notice.IsError():
		content = bg.paint(m.notice.Text, styles.DangerText)
	case m.notice.Text != "":
		content = bg.paint(m.notice.Text, styles.SuccessText)
	default:
		hints := make([]string, 0, 2)
		for _, binding := range m.keys.ShortHelp() {
			h := binding.Help()
			hints = append(hints, bg.pair(h.Key, styles.AccentText, h.Desc, styles.FaintText))
		}
		content = bg.join(hints, 2)
	}
	return styles.Footer.Width(m.width).Render(content)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/splitboard/internal/reconcile"
	"github.com/five82/splitboard/internal/sheet"
)

const statsBarWidth = 24

// renderStats renders the board statistics view.
func (m Model) renderStats() string {
	bgColor := m.theme.FocusBg
	bg := onSurface(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	width := max(m.width-4, 1)

	if !m.snapshot.Loaded {
		content := bg.fill(bg.paint("게시판을 불러오는 중입니다...", styles.MutedText), width)
		return m.renderTitledBox("통계", content, m.width, m.contentHeight(), true)
	}

	s := m.stats
	label := func(text string) string {
		return bg.paint(padRight(text, 14), styles.MutedText)
	}

	var lines []string
	lines = append(lines,
		label("전체 게시글")+bg.paint(fmt.Sprintf("%d", s.Total), styles.Text),
		label("모집 중")+bg.paint(fmt.Sprintf("%d", s.Open), styles.SuccessText),
		label("완료")+bg.paint(fmt.Sprintf("%d", s.Completed), styles.FaintText),
		label("완료율")+bg.paint(fmt.Sprintf("%.0f%%", s.CompletionRate()*100), styles.AccentText),
		label("댓글")+bg.paint(fmt.Sprintf("%d", s.Comments), styles.Text),
		label("모집 중 총액")+bg.paint(reconcile.FormatPrice(s.OpenValue, sheet.PriceTotal), styles.WarningText),
		"",
		bg.paint("카테고리별", styles.AccentText.Bold(true)),
	)

	peak := 0
	for _, c := range s.Categories {
		peak = max(peak, c.Count)
	}
	for _, c := range s.Categories {
		lines = append(lines,
			label(truncate(c.Category, 13))+
				bg.paint(bar(c.Count, peak, statsBarWidth), styles.InfoText)+
				bg.pad(1)+
				bg.paint(fmt.Sprintf("%d", c.Count), styles.Text))
	}
	if len(s.Categories) == 0 {
		lines = append(lines, bg.paint("게시글이 없습니다.", styles.MutedText))
	}

	for i, line := range lines {
		lines[i] = bg.fill(line, width)
	}
	content := lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Height(max(m.contentHeight()-2, 1)).
		Render(strings.Join(lines, "\n"))
	return m.renderTitledBox("통계", content, m.width, m.contentHeight(), true)
}

// bar draws count scaled against peak, at least one cell for non-zero counts.
func bar(count, peak, width int) string {
	if peak <= 0 || count <= 0 {
		return strings.Repeat("·", width)
	}
	filled := max(count*width/peak, 1)
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

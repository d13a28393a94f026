package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/splitboard/internal/reconcile"
	"github.com/five82/splitboard/internal/sheet"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "제목, 장소, 내용 검색"
	ti.Prompt = "/"
	ti.CharLimit = 100
	return ti
}

// selectedPost returns the highlighted row of the board.
func (m Model) selectedPost() (reconcile.PostView, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.posts) {
		return reconcile.PostView{}, false
	}
	return m.posts[m.selectedRow], true
}

// restoreSelection keeps the cursor on id when it is still listed and
// clamps it otherwise.
func (m *Model) restoreSelection(id string) {
	if len(m.posts) == 0 {
		m.selectedRow = 0
		return
	}
	if id != "" {
		for i, p := range m.posts {
			if p.Post.ID == id {
				m.selectedRow = i
				return
			}
		}
	}
	m.selectedRow = min(max(m.selectedRow, 0), len(m.posts)-1)
}

// handleBoardKey processes keyboard input for the board view.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = inputSearch
		m.searchInput.SetValue(m.rec.Search())
		m.searchInput.CursorEnd()
		focusCmd := m.searchInput.Focus()
		return m, focusCmd

	case key.Matches(msg, m.keys.CycleFilter):
		m.categoryIdx = (m.categoryIdx + 1) % len(categoryOptions())
		m.rec.ApplyFilter(categoryOptions()[m.categoryIdx])
		m.selectedRow = 0
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.NewPost):
		m.form = newPostForm(m.rec.Form(), "")
		m.mode = inputForm
		focusCmd := m.form.setFocus(fieldTitle)
		return m, focusCmd

	case key.Matches(msg, m.keys.Escape):
		// Clear search and filter in one step.
		m.categoryIdx = 0
		m.searchInput.SetValue("")
		m.rec.ApplyFilter(reconcile.AllCategories)
		m.rec.ApplySearch("")
		m.sync()
		return m, nil
	}

	itemCount := len(m.posts)
	if itemCount == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < itemCount-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = itemCount - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+m.contentHeight()/2, itemCount-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-m.contentHeight()/2, 0)
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedPost(); ok && m.rec.OpenDetail(p.Post.ID) {
			m.currentView = ViewDetail
			m.sync()
			m.detailViewport.GotoTop()
		}
	}
	return m, nil
}

// handleSearchKey applies the search term as it is typed.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = inputNone
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.mode = inputNone
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.rec.ApplySearch("")
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.rec.ApplySearch(m.searchInput.Value())
	m.selectedRow = 0
	m.sync()
	return m, cmd
}

// renderBoard renders the post list with a preview of the selected post.
func (m Model) renderBoard() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	if !m.snapshot.Loaded && len(m.posts) == 0 {
		msg := "게시판을 불러오는 중..."
		if m.snapshot.LastError != nil {
			msg = "게시판을 불러오지 못했습니다. 잠시 후 다시 시도합니다."
		}
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	var listWidth int
	if m.width >= LayoutExtraWideWidth {
		listWidth = m.width * 45 / 100
	} else {
		listWidth = m.width * 55 / 100
	}
	previewWidth := m.width - listWidth

	listContent := m.renderPostList(listWidth-2, contentHeight-2, m.theme.FocusBg)
	listPane := m.renderTitledBox(m.boardTitle(), listContent, listWidth, contentHeight, true)

	previewContent := m.renderPreview(previewWidth-2, m.theme.SurfaceAlt)
	previewPane := m.renderTitledBox("미리보기", previewContent, previewWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
}

func (m Model) boardTitle() string {
	title := fmt.Sprintf("게시글 %d · %s", len(m.posts), m.filterLabel())
	if term := strings.TrimSpace(m.rec.Search()); term != "" {
		title += " · /" + truncate(term, 16)
	}
	return title
}

// renderPostList renders the visible window of rows around the selection.
func (m Model) renderPostList(width, height int, bgColor string) string {
	if len(m.posts) == 0 {
		return onSurface(bgColor).paint("조건에 맞는 게시글이 없습니다.", m.theme.Styles().MutedText)
	}

	start := 0
	if height > 0 && m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := len(m.posts)
	if height > 0 {
		end = min(start+height, len(m.posts))
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := ternary(selected, m.theme.SelectionBg, bgColor)
		content := m.formatPostRow(m.posts[i], width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatPostRow formats one row: "● Title · price · [n] · time".
func (m Model) formatPostRow(p reconcile.PostView, width int, bgColor string, selected bool) string {
	bg := onSurface(bgColor)

	price := p.PriceLabel
	meta := p.RelativeTime
	if p.CommentCount > 0 {
		meta = fmt.Sprintf("[%d] %s", p.CommentCount, meta)
	}
	titleWidth := max(width-lipgloss.Width(price)-lipgloss.Width(meta)-8, 8)

	var dotStyle, titleStyle, sepStyle, priceStyle, metaStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		dotStyle, titleStyle, sepStyle, priceStyle, metaStyle = selText, selText, selText, selText, selText
	} else {
		styles := m.theme.Styles()
		dotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colorForStatus(p.Post.Status)))
		titleStyle = styles.Text
		if p.Post.Completed() {
			titleStyle = styles.FaintText.Strikethrough(true)
		}
		sepStyle = styles.FaintText
		priceStyle = styles.AccentText
		metaStyle = styles.MutedText
	}

	return bg.paint("●", dotStyle) + bg.pad(1) +
		bg.paint(truncate(p.Title, titleWidth), titleStyle) +
		bg.paint(" · ", sepStyle) +
		bg.paint(price, priceStyle) +
		bg.paint(" · ", sepStyle) +
		bg.paint(meta, metaStyle)
}

// renderPreview summarises the selected post.
func (m Model) renderPreview(width int, bgColor string) string {
	p, ok := m.selectedPost()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()
	bg := onSurface(bgColor)

	field := func(label, value string) string {
		return bg.pair(padRight(label, 6), styles.MutedText, truncate(value, width-8), styles.Text)
	}

	lines := []string{
		bg.paint(truncate(p.Title, width), styles.Text.Bold(true)),
		m.statusBadge(p.Post.Status),
		"",
		field("분류", p.Post.Category),
		field("가격", p.PriceLabel),
	}
	if hint := reconcile.SplitHint(p.Post, 0); hint != "" {
		lines = append(lines, field("나눔", hint))
	}
	if p.Post.Location != "" {
		lines = append(lines, field("장소", p.Post.Location))
	}
	lines = append(lines,
		field("등록", p.RelativeTime),
		field("댓글", fmt.Sprintf("%d개", p.CommentCount)),
	)
	if p.Preview != "" {
		lines = append(lines, "", bg.paint(p.Preview, styles.MutedText))
	}
	lines = append(lines, "", bg.paint("enter: 자세히 보기", styles.FaintText))
	return strings.Join(lines, "\n")
}

// statusBadge renders the status label on the status color.
func (m Model) statusBadge(s sheet.Status) string {
	return m.theme.Styles().StatusStyle(statusKey(s)).Render(reconcile.StatusLabel(s))
}

// colorForStatus returns the theme color for a post status.
func (m Model) colorForStatus(s sheet.Status) string {
	if color, ok := m.theme.StatusColors[statusKey(s)]; ok {
		return color
	}
	return m.theme.Text
}

func statusKey(s sheet.Status) string {
	return strings.ToLower(string(s))
}

// renderTitledBox renders content in a box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := onSurface(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.paint("┌", borderStyle) +
		bg.paint(strings.Repeat("─", leftPad), borderStyle) +
		bg.paint(" "+title+" ", titleStyle) +
		bg.paint(strings.Repeat("─", rightPad), borderStyle) +
		bg.paint("┐", borderStyle)

	bottomBorder := bg.paint("└", borderStyle) +
		bg.paint(strings.Repeat("─", innerWidth), borderStyle) +
		bg.paint("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.paint("│", borderStyle)+
				contentStyle.Render(line)+
				bg.paint("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

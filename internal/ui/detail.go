package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/splitboard/internal/reconcile"
)

// initDetailViewport initializes the detail viewport.
func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(max(m.width-4, 1), max(m.contentHeight()-2, 1))
	m.detailViewport.Style = lipgloss.NewStyle()
}

// updateDetailViewport re-renders the open post into the viewport,
// keeping the scroll offset.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = max(m.width-4, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if !m.hasDetail {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
}

// renderDetail renders the open post.
func (m Model) renderDetail() string {
	title := "게시글"
	if m.hasDetail {
		title = m.detail.Title
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// renderDetailContent lays out the post followed by its comment thread.
func (m Model) renderDetailContent(width int) string {
	d := m.detail
	styles := m.theme.Styles()
	bg := onSurface(m.theme.FocusBg)
	labelWidth := 6

	field := func(label, value string, style lipgloss.Style) string {
		return bg.pair(padRight(label, labelWidth), styles.MutedText, value, style)
	}

	var lines []string
	lines = append(lines,
		bg.paint(d.Title, styles.Text.Bold(true))+bg.pad(2)+m.statusBadge(d.Post.Status),
		"",
		field("분류", d.Post.Category, styles.Text),
		field("가격", d.PriceLabel, styles.AccentText),
	)
	if d.SplitHint != "" {
		lines = append(lines, field("나눔", d.SplitHint, styles.InfoText))
	}
	location := d.Post.Location
	if location == "" {
		location = "-"
	}
	lines = append(lines,
		field("장소", location, styles.Text),
		field("등록", d.RelativeTime, styles.MutedText),
	)
	if d.Completed {
		lines = append(lines, "", bg.paint("거래가 완료된 게시글입니다.", styles.SuccessText))
	}

	lines = append(lines, "", bg.rule(width-2, styles.FaintText))
	description := strings.TrimSpace(d.Post.Description)
	if description == "" {
		lines = append(lines, bg.paint("내용이 없습니다.", styles.FaintText))
	} else {
		wrapped := lipgloss.NewStyle().Width(max(width-2, 10)).Render(description)
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, bg.paint(strings.TrimRight(line, " "), styles.Text))
		}
	}

	lines = append(lines, "", bg.rule(width-2, styles.FaintText))
	lines = append(lines, bg.pair("댓글", styles.AccentText.Bold(true),
		countLabel(len(d.Comments)), styles.MutedText))
	if len(d.Comments) == 0 {
		lines = append(lines, bg.paint("첫 댓글을 남겨보세요. (c)", styles.FaintText))
	}
	for _, c := range d.Comments {
		lines = append(lines, "", m.renderCommentHeader(c, bg, styles))
		wrapped := lipgloss.NewStyle().Width(max(width-4, 10)).Render(c.Content)
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, bg.pad(2)+bg.paint(strings.TrimRight(line, " "), styles.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCommentHeader(c reconcile.CommentView, bg surface, styles Styles) string {
	header := bg.paint(c.Author, styles.Text.Bold(true)) + bg.paint(" · ", styles.FaintText) +
		bg.paint(c.RelativeTime, styles.MutedText)
	if c.Local() {
		header += bg.pad(1) + styles.StatusStyle("pending").Render("전송 중")
	}
	return header
}

func countLabel(n int) string {
	return strconv.Itoa(n) + "개"
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.hasDetail {
		m.currentView = ViewBoard
		return m, nil
	}
	id := m.detail.Post.ID

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.rec.CloseDetail()
		m.currentView = ViewBoard
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		m.comment = newCommentForm(id)
		m.mode = inputComment
		focusCmd := m.comment.setFocus(0)
		return m, focusCmd

	case key.Matches(msg, m.keys.Complete):
		if !m.detail.CanComplete {
			// Already completed; the action is not offered.
			return m, nil
		}
		m.prompt = newPasswordPrompt(purposeComplete, id)
		m.mode = inputPassword
		focusCmd := m.prompt.input.Focus()
		return m, focusCmd

	case key.Matches(msg, m.keys.Delete):
		m.prompt = newPasswordPrompt(purposeDelete, id)
		m.mode = inputPassword
		focusCmd := m.prompt.input.Focus()
		return m, focusCmd

	case key.Matches(msg, m.keys.Edit):
		m.prompt = newPasswordPrompt(purposeEdit, id)
		m.mode = inputPassword
		focusCmd := m.prompt.input.Focus()
		return m, focusCmd

	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	}
	return m, nil
}

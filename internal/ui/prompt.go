package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptPurpose is what a password unlocks.
type promptPurpose int

const (
	purposeComplete promptPurpose = iota
	purposeDelete
	purposeEdit
)

func (p promptPurpose) title() string {
	switch p {
	case purposeComplete:
		return "거래 완료 처리"
	case purposeDelete:
		return "게시글 삭제"
	default:
		return "게시글 수정"
	}
}

type passwordPrompt struct {
	purpose promptPurpose
	postID  string
	input   textinput.Model
}

func newPasswordPrompt(purpose promptPurpose, postID string) passwordPrompt {
	ti := textinput.New()
	ti.Placeholder = "게시글 비밀번호"
	ti.CharLimit = 20
	ti.Width = modalInputWidth
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return passwordPrompt{purpose: purpose, postID: postID, input: ti}
}

// handlePasswordKey submits or cancels the password prompt. The prompt
// closes on submit; the outcome shows up as a notice.
func (m Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		return m, nil
	case "enter":
		m.mode = inputNone
		m.inFlight++
		rec, id, password := m.rec, m.prompt.postID, m.prompt.input.Value()
		switch m.prompt.purpose {
		case purposeComplete:
			return m, m.runAction(opComplete, func(ctx context.Context) error {
				return rec.CompletePost(ctx, id, password)
			})
		case purposeDelete:
			return m, m.runAction(opDelete, func(ctx context.Context) error {
				return rec.DeletePost(ctx, id, password)
			})
		default:
			return m, m.runAction(opVerify, func(ctx context.Context) error {
				return rec.VerifyAndEnterEditMode(ctx, id, password)
			})
		}
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m Model) renderPasswordPrompt() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.prompt.purpose.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	if m.hasDetail {
		b.WriteString(styles.MutedText.Render(truncate(m.detail.Title, 40)))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.AccentText.Render("비밀번호  "))
	b.WriteString(m.prompt.input.View())
	b.WriteString("\n\n")
	if m.prompt.purpose == purposeDelete {
		b.WriteString(styles.DangerText.Render("삭제한 게시글은 되돌릴 수 없습니다."))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: 확인  •  Esc: 취소"))
	return m.renderModal(b.String(), 50)
}

// commentForm collects an optional author and the comment text.
type commentForm struct {
	postID  string
	author  textinput.Model
	content textinput.Model
	focus   int // 0 = author, 1 = content
}

func newCommentForm(postID string) commentForm {
	author := textinput.New()
	author.Placeholder = "닉네임 (비우면 anonymous)"
	author.CharLimit = 30
	author.Width = modalInputWidth

	content := textinput.New()
	content.Placeholder = "댓글 내용"
	content.CharLimit = 300
	content.Width = modalInputWidth

	return commentForm{postID: postID, author: author, content: content}
}

func (c *commentForm) setFocus(idx int) tea.Cmd {
	c.focus = idx
	if idx == 0 {
		c.content.Blur()
		return c.author.Focus()
	}
	c.author.Blur()
	return c.content.Focus()
}

// handleCommentKey edits the comment form. Submitting closes it at once;
// the comment appears in the thread before the sheet confirms it.
func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		return m, nil
	case "tab", "shift+tab", "up", "down":
		focusCmd := m.comment.setFocus(1 - m.comment.focus)
		return m, focusCmd
	case "enter":
		if m.comment.focus == 0 {
			focusCmd := m.comment.setFocus(1)
			return m, focusCmd
		}
		m.mode = inputNone
		m.inFlight++
		rec, id := m.rec, m.comment.postID
		author, content := m.comment.author.Value(), m.comment.content.Value()
		return m, m.runAction(opComment, func(ctx context.Context) error {
			return rec.SubmitComment(ctx, id, author, content)
		})
	}

	var cmd tea.Cmd
	if m.comment.focus == 0 {
		m.comment.author, cmd = m.comment.author.Update(msg)
	} else {
		m.comment.content, cmd = m.comment.content.Update(msg)
	}
	return m, cmd
}

func (m Model) renderCommentForm() string {
	styles := m.theme.Styles()

	label := func(idx int, text string) string {
		text = padRight(text, 10)
		if m.comment.focus == idx {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("댓글 쓰기"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", ModalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(label(0, "닉네임") + m.comment.author.View())
	b.WriteString("\n\n")
	b.WriteString(label(1, "내용") + m.comment.content.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Tab: 이동  •  Enter: 등록  •  Esc: 취소"))
	return m.renderModal(b.String(), ModalWidth)
}

// renderModal centres content in a bordered box over the screen.
func (m Model) renderModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

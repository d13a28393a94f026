package ui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/splitboard/internal/sheet"
)

// formField indexes the fields of the post form in tab order.
type formField int

const (
	fieldTitle formField = iota
	fieldCategory
	fieldPriceKind
	fieldPrice
	fieldLocation
	fieldDescription
	fieldPassword
	fieldCount
)

// postForm is the create/edit form. postID is empty for a new post.
type postForm struct {
	postID      string
	title       textinput.Model
	price       textinput.Model
	location    textinput.Model
	password    textinput.Model
	description textarea.Model
	categories  []string
	category    int
	priceKind   sheet.PriceKind
	focus       formField
	submitting  bool
	err         string
}

func newPostForm(f sheet.PostFields, postID string) postForm {
	title := textinput.New()
	title.Width = modalInputWidth
	title.Placeholder = "무엇을 나누나요?"
	title.CharLimit = 80
	title.SetValue(f.Title)

	price := textinput.New()
	price.Width = modalInputWidth
	price.Placeholder = "0"
	price.CharLimit = 12
	if f.Price > 0 {
		price.SetValue(strconv.Itoa(f.Price))
	}

	location := textinput.New()
	location.Width = modalInputWidth
	location.Placeholder = "만날 장소"
	location.CharLimit = 80
	location.SetValue(f.Location)

	password := textinput.New()
	password.Width = modalInputWidth
	password.Placeholder = "수정/삭제용 숫자 비밀번호"
	password.CharLimit = 20
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.SetValue(f.Password)

	description := textarea.New()
	description.Placeholder = "내용"
	description.ShowLineNumbers = false
	description.CharLimit = 1000
	description.SetHeight(4)
	description.SetWidth(ModalWidth - 8)
	description.SetValue(f.Description)

	categories := sheet.Categories
	category := 0
	if c := strings.TrimSpace(f.Category); c != "" {
		if idx := slices.Index(categories, c); idx >= 0 {
			category = idx
		} else {
			// Keep categories the sheet knows but the picker does not.
			categories = append([]string{c}, sheet.Categories...)
		}
	}

	return postForm{
		postID:      postID,
		title:       title,
		price:       price,
		location:    location,
		password:    password,
		description: description,
		categories:  categories,
		category:    category,
		priceKind:   f.PriceKind,
	}
}

// Fields reads the form back into post fields. Only the price is parsed
// here; required fields are checked by the reconciler.
func (f postForm) Fields() (sheet.PostFields, error) {
	raw := strings.TrimSpace(f.price.Value())
	raw = strings.TrimSuffix(raw, "원")
	raw = strings.ReplaceAll(raw, ",", "")
	price := 0
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return sheet.PostFields{}, &sheet.ValidationError{Field: "price", Message: "가격은 숫자로 입력해주세요."}
		}
		price = n
	}
	return sheet.PostFields{
		Title:       strings.TrimSpace(f.title.Value()),
		PriceKind:   f.priceKind,
		Category:    f.categories[f.category],
		Price:       price,
		Location:    strings.TrimSpace(f.location.Value()),
		Description: strings.TrimSpace(f.description.Value()),
		Password:    strings.TrimSpace(f.password.Value()),
	}, nil
}

// setFocus moves the cursor to field and blurs the rest.
func (f *postForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.price.Blur()
	f.location.Blur()
	f.password.Blur()
	f.description.Blur()

	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldPrice:
		return f.price.Focus()
	case fieldLocation:
		return f.location.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldPassword:
		return f.password.Focus()
	}
	return nil
}

func (f *postForm) cycleOption(step int) {
	switch f.focus {
	case fieldCategory:
		f.category = (f.category + step + len(f.categories)) % len(f.categories)
	case fieldPriceKind:
		if f.priceKind == sheet.PriceTotal {
			f.priceKind = sheet.PricePerPerson
		} else {
			f.priceKind = sheet.PriceTotal
		}
	}
}

// handleFormKey routes keys to the focused field.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = inputNone
		if m.form.postID != "" {
			m.rec.CancelEdit()
		} else if fields, err := m.form.Fields(); err == nil {
			// Keep the draft for the next "new post".
			m.rec.SetForm(fields)
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	case key.Matches(msg, m.keys.NextField):
		focusCmd := m.form.setFocus((m.form.focus + 1) % fieldCount)
		return m, focusCmd
	case key.Matches(msg, m.keys.PrevField):
		focusCmd := m.form.setFocus((m.form.focus - 1 + fieldCount) % fieldCount)
		return m, focusCmd
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldCategory, fieldPriceKind:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.form.cycleOption(-1)
		case key.Matches(msg, m.keys.Right):
			m.form.cycleOption(1)
		case key.Matches(msg, m.keys.Confirm):
			cmd = m.form.setFocus(m.form.focus + 1)
		}
	case fieldDescription:
		m.form.description, cmd = m.form.description.Update(msg)
	default:
		if key.Matches(msg, m.keys.Confirm) {
			if m.form.focus == fieldPassword {
				return m.submitForm()
			}
			focusCmd := m.form.setFocus(m.form.focus + 1)
			return m, focusCmd
		}
		switch m.form.focus {
		case fieldTitle:
			m.form.title, cmd = m.form.title.Update(msg)
		case fieldPrice:
			m.form.price, cmd = m.form.price.Update(msg)
		case fieldLocation:
			m.form.location, cmd = m.form.location.Update(msg)
		case fieldPassword:
			m.form.password, cmd = m.form.password.Update(msg)
		}
	}
	return m, cmd
}

// submitForm sends the form through the reconciler. The form stays open
// until the result comes back so a rejection can be corrected in place.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	fields, err := m.form.Fields()
	if err != nil {
		m.form.err = sheet.UserMessage(err)
		return m, nil
	}
	m.form.err = ""
	m.form.submitting = true
	m.inFlight++

	rec := m.rec
	if id := m.form.postID; id != "" {
		return m, m.runAction(opUpdate, func(ctx context.Context) error {
			return rec.UpdatePost(ctx, id, fields)
		})
	}
	return m, m.runAction(opCreate, func(ctx context.Context) error {
		return rec.CreatePost(ctx, fields)
	})
}

// renderForm renders the post form as a modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	var b strings.Builder
	title := ternary(f.postID == "", "새 게시글", "게시글 수정")
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", ModalWidth-6)))
	b.WriteString("\n\n")

	label := func(field formField, text string) string {
		text = padRight(text, 10)
		if f.focus == field {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}
	option := func(field formField, value string) string {
		if f.focus == field {
			return styles.AccentText.Render("◀ " + value + " ▶")
		}
		return styles.Text.Render("  " + value)
	}

	rows := []string{
		label(fieldTitle, "제목") + f.title.View(),
		label(fieldCategory, "카테고리") + option(fieldCategory, f.categories[f.category]),
		label(fieldPriceKind, "가격 기준") + option(fieldPriceKind, ternary(f.priceKind == sheet.PricePerPerson, "1인당", "총액")),
		label(fieldPrice, "가격") + f.price.View(),
		label(fieldLocation, "장소") + f.location.View(),
		label(fieldDescription, "내용"),
		f.description.View(),
		label(fieldPassword, "비밀번호") + f.password.View(),
	}
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n\n")

	switch {
	case f.err != "":
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n")
	case m.notice.Text != "" && m.notice.IsError():
		b.WriteString(styles.DangerText.Render(m.notice.Text))
		b.WriteString("\n")
	case f.submitting:
		b.WriteString(styles.WarningText.Render("저장 중..."))
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("Tab: 다음  •  ←/→: 선택  •  Ctrl+S: 저장  •  Esc: 취소"))
	return m.renderModal(b.String(), ModalWidth)
}

// modalInputWidth is the text width of inputs placed after a label.
const modalInputWidth = ModalWidth - 18

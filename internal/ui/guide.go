package ui

import "strings"

// renderGuide renders the first-visit guide. It is shown once; closing it
// records guide_shown in the prefs file.
func (m Model) renderGuide() string {
	styles := m.theme.Styles()

	steps := []string{
		"같이 사면 더 싸지는 물건을 올리고 N명이 나눠 냅니다.",
		"n 으로 글을 쓰고, 가격이 총액인지 1인당인지 고르세요.",
		"글마다 숫자 비밀번호를 정합니다. 완료, 수정, 삭제에 필요합니다.",
		"enter 로 글을 열고 c 로 댓글을 남기세요.",
		"f 로 카테고리를, / 로 검색어를 걸러볼 수 있습니다.",
		"게시판은 30초마다 자동으로 새로고침됩니다.",
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("splitboard 에 오신 것을 환영합니다"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 44)))
	b.WriteString("\n\n")
	for i, step := range steps {
		b.WriteString(styles.AccentText.Render(string(rune('1'+i)) + ". "))
		b.WriteString(styles.Text.Render(step))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("아무 키나 누르면 시작합니다. 도움말은 ? 입니다."))
	return m.renderModal(b.String(), ModalWidth)
}

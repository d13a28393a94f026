package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/splitboard/internal/logtail"
)

func (m *Model) initDiagViewport() {
	m.diagViewport = viewport.New(max(m.width-4, 1), max(m.contentHeight()-2, 1))
	m.diagViewport.Style = lipgloss.NewStyle()
}

// updateDiagViewport re-renders the log tail. The view follows new lines
// only while it is already scrolled to the bottom.
func (m *Model) updateDiagViewport() {
	if !m.ready {
		return
	}
	follow := m.diagViewport.AtBottom() || m.diagViewport.TotalLineCount() == 0

	m.diagViewport.Width = max(m.width-4, 1)
	m.diagViewport.Height = max(m.contentHeight()-2, 1)
	m.diagViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.diagViewport.SetContent(m.renderDiagnosticsContent(m.diagViewport.Width))

	if follow {
		m.diagViewport.GotoBottom()
	}
}

// renderDiagnostics renders the diagnostics log view.
func (m Model) renderDiagnostics() string {
	title := "Diagnostics"
	if m.logFile != "" {
		title = fmt.Sprintf("Diagnostics · %s", truncate(m.logFile, max(m.width/2, 10)))
	}
	return m.renderTitledBox(title, m.diagViewport.View(), m.width, m.contentHeight(), true)
}

func (m Model) renderDiagnosticsContent(width int) string {
	bg := onSurface(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	switch {
	case m.logFile == "":
		return bg.fill(bg.paint("로그 파일이 설정되지 않았습니다 (log_file).", styles.MutedText), width)
	case m.diagErr != nil:
		return bg.fill(bg.paint(m.diagErr.Error(), styles.DangerText), width)
	case len(m.diagLines) == 0:
		return bg.fill(bg.paint("아직 기록된 로그가 없습니다.", styles.MutedText), width)
	}

	lines := make([]string, 0, len(m.diagLines))
	for i, line := range m.diagLines {
		row := bg.paint(fmt.Sprintf("%4d │ ", i+1), styles.FaintText) +
			bg.paint(truncate(line, max(width-7, 1)), levelStyle(logtail.LineLevel(line), styles))
		lines = append(lines, bg.fill(row, width))
	}
	return strings.Join(lines, "\n")
}

func levelStyle(level logtail.Level, styles Styles) lipgloss.Style {
	switch level {
	case logtail.LevelError:
		return styles.DangerText
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelInfo:
		return styles.Text
	default:
		return styles.MutedText
	}
}

// handleDiagnosticsKey processes keyboard input for the diagnostics view.
func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		m.diagViewport.GotoTop()
	case "G":
		m.diagViewport.GotoBottom()
	case "j", "down":
		m.diagViewport.ScrollDown(1)
	case "k", "up":
		m.diagViewport.ScrollUp(1)
	case "ctrl+d":
		m.diagViewport.HalfPageDown()
	case "ctrl+u":
		m.diagViewport.HalfPageUp()
	case "pgdown", " ":
		m.diagViewport.PageDown()
	case "pgup":
		m.diagViewport.PageUp()
	case "esc":
		m.currentView = ViewBoard
	}
	return m, nil
}

// loadDiagnostics reads the tail of the log file off the event loop.
func (m Model) loadDiagnostics() tea.Cmd {
	path := m.logFile
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, DiagnosticsLineLimit)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

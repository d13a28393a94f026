package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/splitboard/internal/prefs"
	"github.com/five82/splitboard/internal/reconcile"
	"github.com/five82/splitboard/internal/sheet"
	"github.com/five82/splitboard/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBoard View = iota
	ViewDetail
	ViewStats
	ViewDiagnostics
)

// inputMode says which input, if any, owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputForm
	inputPassword
	inputComment
)

// action identifies an asynchronous reconciler call.
type action int

const (
	opRefresh action = iota
	opCreate
	opUpdate
	opVerify
	opComplete
	opDelete
	opComment
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Reconciler *reconcile.Reconciler
	Endpoint   string
	LogFile    string
	UITick     time.Duration // redraw cadence for relative times and notices
	ThemeName  string
	GuideShown bool
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	rec       *reconcile.Reconciler
	changes   chan struct{}
	endpoint  string
	logFile   string
	prefsPath string
	uiTick    time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state, re-derived from the reconciler on every change
	snapshot  state.Snapshot
	posts     []reconcile.PostView
	detail    reconcile.DetailView
	hasDetail bool
	stats     reconcile.Stats
	notice    reconcile.Notice
	inFlight  int

	// Board state
	selectedRow int
	categoryIdx int // 0 = all, otherwise sheet.Categories[categoryIdx-1]
	searchInput textinput.Model

	// Detail state
	detailViewport viewport.Model

	// Diagnostics state
	diagViewport viewport.Model
	diagLines    []string
	diagErr      error

	// Inputs
	mode    inputMode
	form    postForm
	prompt  passwordPrompt
	comment commentForm

	// Overlays
	showHelp  bool
	showGuide bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	// Coalescing change signal: one pending wake-up is enough since every
	// sync re-reads the whole board.
	changes := make(chan struct{}, 1)
	if opts.Reconciler != nil {
		opts.Reconciler.Subscribe(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	}

	m := Model{
		ctx:         ctx,
		rec:         opts.Reconciler,
		changes:     changes,
		endpoint:    opts.Endpoint,
		logFile:     opts.LogFile,
		prefsPath:   prefsPath,
		uiTick:      uiTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewBoard,
		searchInput: newSearchInput(),
		showGuide:   !opts.GuideShown,
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.uiTick),
		waitForChange(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initDiagViewport()
		}
		m.ready = true
		m.searchInput.Width = max(m.width/3, 20)
		m.updateDetailViewport()
		m.updateDiagViewport()
		return m, nil

	case tickMsg:
		m.sync()
		cmds := []tea.Cmd{tickCmd(m.uiTick)}
		if m.currentView == ViewDiagnostics {
			cmds = append(cmds, m.loadDiagnostics())
		}
		return m, tea.Batch(cmds...)

	case boardChangedMsg:
		m.sync()
		return m, waitForChange(m.changes)

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case diagnosticsMsg:
		m.diagLines = msg.lines
		m.diagErr = msg.err
		m.updateDiagViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showGuide {
		return m.renderGuide()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	switch m.mode {
	case inputForm:
		return m.renderForm()
	case inputPassword:
		return m.renderPasswordPrompt()
	case inputComment:
		return m.renderCommentForm()
	}
	return m.renderMain()
}

// sync re-derives everything shown from the reconciler. Selection is kept
// on the same post id when it survives.
func (m *Model) sync() {
	if m.rec == nil {
		return
	}
	selectedID := ""
	if p, ok := m.selectedPost(); ok {
		selectedID = p.Post.ID
	}

	m.snapshot = m.rec.Snapshot()
	m.posts = m.rec.Posts()
	m.stats = m.rec.Stats()
	m.notice = m.rec.Notice()
	m.detail, m.hasDetail = m.rec.Detail()

	m.restoreSelection(selectedID)

	if !m.hasDetail {
		if m.currentView == ViewDetail {
			m.currentView = ViewBoard
		}
		// Prompts tied to a post that is gone have nothing left to act on.
		switch {
		case m.mode == inputPassword, m.mode == inputComment:
			m.mode = inputNone
		case m.mode == inputForm && m.form.postID != "":
			m.mode = inputNone
		}
	}
	m.updateDetailViewport()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showGuide {
		m.showGuide = false
		m.markGuideShown()
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case inputSearch:
		return m.handleSearchKey(msg)
	case inputForm:
		return m.handleFormKey(msg)
	case inputPassword:
		return m.handlePasswordKey(msg)
	case inputComment:
		return m.handleCommentKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.saveTheme()
		m.updateDetailViewport()
		m.updateDiagViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshCmd()
		if cmd != nil {
			m.inFlight++
		}
		return m, cmd

	case key.Matches(msg, m.keys.Tab):
		return m.cycleView(1)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.cycleView(-1)

	case key.Matches(msg, m.keys.ViewBoard):
		m.leaveDetail()
		m.currentView = ViewBoard
		return m, nil

	case key.Matches(msg, m.keys.ViewStats):
		m.leaveDetail()
		m.currentView = ViewStats
		return m, nil

	case key.Matches(msg, m.keys.ViewDiagnostics):
		m.leaveDetail()
		m.currentView = ViewDiagnostics
		return m, m.loadDiagnostics()
	}

	switch m.currentView {
	case ViewBoard:
		return m.handleBoardKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewDiagnostics:
		return m.handleDiagnosticsKey(msg)
	case ViewStats:
		if key.Matches(msg, m.keys.Escape) {
			m.currentView = ViewBoard
		}
	}
	return m, nil
}

// cycleView moves through board, statistics and diagnostics.
func (m Model) cycleView(step int) (tea.Model, tea.Cmd) {
	order := []View{ViewBoard, ViewStats, ViewDiagnostics}
	current := m.currentView
	if current == ViewDetail {
		current = ViewBoard
	}
	idx := 0
	for i, v := range order {
		if v == current {
			idx = i
		}
	}
	m.leaveDetail()
	m.currentView = order[(idx+step+len(order))%len(order)]
	if m.currentView == ViewDiagnostics {
		return m, m.loadDiagnostics()
	}
	return m, nil
}

// leaveDetail closes the open post when switching away from it.
func (m *Model) leaveDetail() {
	if m.currentView == ViewDetail && m.rec != nil {
		m.rec.CloseDetail()
		m.sync()
	}
}

// handleActionDone reacts to a finished reconciler call. Failures are
// already recorded as notices; only the input state needs adjusting.
func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.sync()

	switch msg.op {
	case opCreate, opUpdate:
		m.form.submitting = false
		if msg.err == nil && m.mode == inputForm {
			m.mode = inputNone
		}
	case opVerify:
		if msg.err == nil && m.rec.EditMode() && m.hasDetail {
			m.form = newPostForm(m.rec.Form(), m.detail.Post.ID)
			m.mode = inputForm
			focusCmd := m.form.setFocus(fieldTitle)
			return m, focusCmd
		}
	}
	return m, nil
}

func (m *Model) markGuideShown() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.GuideShown = true })
}

func (m *Model) saveTheme() {
	if m.prefsPath == "" {
		return
	}
	name := m.theme.Name
	_ = prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name })
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// contentHeight is the space left for a view below the two header lines
// and above the footer.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBoard:
		return m.renderBoard()
	case ViewDetail:
		return m.renderDetail()
	case ViewStats:
		return m.renderStats()
	case ViewDiagnostics:
		return m.renderDiagnostics()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type boardChangedMsg struct{}

type actionDoneMsg struct {
	op  action
	err error
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return boardChangedMsg{}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.rec == nil {
		return nil
	}
	return m.runAction(opRefresh, m.rec.Refresh)
}

// runAction calls fn off the event loop and reports its outcome.
func (m Model) runAction(op action, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{op: op, err: fn(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Cancelled from outside (signal); not a UI failure.
		return nil
	}
	return err
}

// categoryOptions is the filter cycle: all categories, then each one.
func categoryOptions() []string {
	return append([]string{reconcile.AllCategories}, sheet.Categories...)
}

// filterLabel returns the display label for the current category filter.
func (m Model) filterLabel() string {
	opts := categoryOptions()
	if m.categoryIdx <= 0 || m.categoryIdx >= len(opts) {
		return "전체"
	}
	return opts[m.categoryIdx]
}

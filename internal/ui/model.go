package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/notify"
	"github.com/hielopolar/polar/internal/prefs"
	"github.com/hielopolar/polar/internal/state"
)

// View is the active screen.
type View int

const (
	ViewAssets View = iota
	ViewLogs
)

type mode int

const (
	modeNormal mode = iota
	modeForm
	modeConfirmDelete
	modeHelp
)

// Options configure the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Notices      <-chan notify.Notice
	LogPath      string
	ThemeName    string
	StatusFilter string
	PrefsPath    string
	Remote       bool
	Refresh      time.Duration
	Logger       *zap.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	store     *state.Store
	notices   <-chan notify.Notice
	logPath   string
	prefsPath string
	remote    bool
	refresh   time.Duration
	logger    *zap.Logger
	keys      keyMap

	theme  Theme
	view   View
	mode   mode
	width  int
	height int
	ready  bool

	snapshot   state.Snapshot
	selected   int
	filter     asset.Status // empty shows every status
	showDetail bool

	form       formState
	confirmID  string
	pulling    bool
	toasts     []toast
	logs       logState
	logView    viewport.Model
}

// New creates the model. The store must already be loaded.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var filter asset.Status
	if st, err := asset.ParseStatus(opts.StatusFilter); err == nil {
		filter = st
	}

	m := Model{
		ctx:        ctx,
		store:      opts.Store,
		notices:    opts.Notices,
		logPath:    opts.LogPath,
		prefsPath:  opts.PrefsPath,
		remote:     opts.Remote,
		refresh:    refresh,
		logger:     logger.Named("ui"),
		keys:       DefaultKeyMap(),
		theme:      GetTheme(opts.ThemeName),
		filter:     filter,
		showDetail: true,
		logs:       newLogState(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.notices != nil {
		cmds = append(cmds, waitForNotice(m.notices))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case noticeMsg:
		m.pushToast(notify.Notice(msg))
		return m, waitForNotice(m.notices)

	case pullDoneMsg:
		m.pulling = false
		if msg.err != nil {
			m.pushToast(notify.New(notify.Error, "Error", "No se pudo sincronizar con la base de datos remota."))
		} else {
			m.pushToast(notify.New(notify.Success, "Sincronizado", "Los conservadores se han actualizado desde la base de datos."))
		}
		return m, fetchSnapshotCmd(m.store)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	switch m.mode {
	case modeHelp:
		return m.renderHelp()
	case modeForm:
		return m.renderForm()
	case modeConfirmDelete:
		return m.renderConfirm()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		if m.view == ViewLogs {
			m.view = ViewAssets
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.logs.dirty = true
		m.refreshLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Pull):
		return m.startPull()
	case key.Matches(msg, m.keys.ViewLogs):
		if m.view == ViewLogs {
			m.view = ViewAssets
			return m, nil
		}
		m.view = ViewLogs
		return m, readLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewAssets
		return m, nil
	}

	if m.view == ViewLogs {
		return m.handleLogsKey(msg)
	}
	return m.handleAssetsKey(msg)
}

func (m Model) handleAssetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleAssets()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected = clamp(m.selected+1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Up):
		m.selected = clamp(m.selected-1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = clamp(len(items)-1, 0, len(items)-1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected = clamp(m.selected+m.tableRows()/2, 0, len(items)-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected = clamp(m.selected-m.tableRows()/2, 0, len(items)-1)
	case key.Matches(msg, m.keys.CycleFilter):
		m.cycleFilter()
	case key.Matches(msg, m.keys.ToggleDetail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keys.Add):
		m.openAddForm()
	case key.Matches(msg, m.keys.Edit):
		if a, ok := m.selectedAsset(); ok {
			m.openEditForm(a)
		}
	case key.Matches(msg, m.keys.CycleStatus):
		if a, ok := m.selectedAsset(); ok && m.store != nil {
			_ = m.store.UpdateAsset(a.ID, asset.Patch{Status: asset.StatusPtr(a.Status.Next())})
			m.applySnapshot(m.store.Snapshot())
		}
	case key.Matches(msg, m.keys.Delete):
		if a, ok := m.selectedAsset(); ok {
			m.confirmID = a.ID
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		if m.store != nil && m.confirmID != "" {
			m.store.DeleteAsset(m.confirmID)
			m.applySnapshot(m.store.Snapshot())
		}
		m.confirmID = ""
		m.mode = modeNormal
	case key.Matches(msg, m.keys.No):
		m.confirmID = ""
		m.mode = modeNormal
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.expireToasts(now)
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.view == ViewLogs && m.logs.follow {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) startPull() (tea.Model, tea.Cmd) {
	if !m.remote || m.store == nil {
		m.pushToast(notify.New(notify.Error, "Sin conexión", "No hay una base de datos remota configurada."))
		return m, nil
	}
	if m.pulling {
		return m, nil
	}
	m.pulling = true
	return m, pullCmd(m.ctx, m.store)
}

// applySnapshot replaces the displayed state and keeps the selection in range.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.selected = clamp(m.selected, 0, len(m.visibleAssets())-1)
}

// visibleAssets applies the status filter.
func (m Model) visibleAssets() asset.Collection {
	if m.filter == "" {
		return m.snapshot.Assets
	}
	var out asset.Collection
	for _, a := range m.snapshot.Assets {
		if a.Status == m.filter {
			out = append(out, a)
		}
	}
	return out
}

func (m Model) selectedAsset() (asset.Asset, bool) {
	items := m.visibleAssets()
	if m.selected < 0 || m.selected >= len(items) {
		return asset.Asset{}, false
	}
	return items[m.selected], true
}

// cycleFilter steps through all → each status → all.
func (m *Model) cycleFilter() {
	statuses := asset.Statuses()
	switch {
	case m.filter == "":
		m.filter = statuses[0]
	case m.filter == statuses[len(statuses)-1]:
		m.filter = ""
	default:
		m.filter = m.filter.Next()
	}
	m.selected = 0
	m.savePrefs()
}

func (m Model) filterLabel() string {
	if m.filter == "" {
		return "Todos"
	}
	return m.filter.Label()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, StatusFilter: string(m.filter)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// renderMain renders header, content, toasts and footer.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader()}
	switch m.view {
	case ViewLogs:
		parts = append(parts, m.renderLogs())
	default:
		parts = append(parts, m.renderAssets())
	}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

// contentHeight is the number of rows left for the active view.
func (m Model) contentHeight() int {
	h := m.height - 2 - len(m.toasts)
	if h < 3 {
		return 3
	}
	return h
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type noticeMsg notify.Notice

type pullDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitForNotice(ch <-chan notify.Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func pullCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, PullTimeout)
		defer cancel()
		return pullDoneMsg{err: store.Pull(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}

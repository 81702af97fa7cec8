// Package teaui hosts the Bubble Tea program for the warden dashboard.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/report"
	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/components/eventviewer"
	guide "tableflip.dev/warden/pkg/tui/components/help"
	"tableflip.dev/warden/pkg/tui/components/sidebar"
	"tableflip.dev/warden/pkg/tui/components/toast"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
	"tableflip.dev/warden/pkg/tui/views/dashboard"
	"tableflip.dev/warden/pkg/tui/views/login"
	"tableflip.dev/warden/pkg/tui/views/reports"
	"tableflip.dev/warden/pkg/tui/views/settings"
)

// Options tunes the dashboard.
type Options struct {
	// Notifications feeds the toast stack. The service sink should write to
	// the same channel.
	Notifications <-chan notify.Notification
	// ReportDir is where generated workbooks are written. Defaults to the
	// working directory.
	ReportDir string
	// Debug opens the event log on start.
	Debug  bool
	Logger *zap.Logger
	Theme  *theme.Theme
}

// KeyMap lists the shell bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Jump   key.Binding
	Events key.Binding
	Help   key.Binding
	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab")),
		Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "panel")),
		Events: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "event log")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Logout: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the root of the dashboard: the login screen, or the header,
// sidebar and active panel once a session exists.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	opts   Options
	logger *zap.Logger
	theme  theme.Theme

	signedIn bool
	user     string
	facility string
	login    *login.Model

	panels  []ui.Panel
	active  int
	sidebar *sidebar.Model

	toasts     *toast.Model
	events     *eventviewer.Model
	showEvents bool
	guide      *guide.Model
	showGuide  bool
	help       help.Model
	keys       KeyMap

	changes map[string]<-chan entitystore.ChangeMsg
	local   <-chan store.Event

	width  int
	height int
}

// New builds the root model. The login screen is shown when svc has no
// session.
func New(ctx context.Context, svc *app.Service, opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		ctx:        ctx,
		svc:        svc,
		opts:       opts,
		logger:     logger.Named("tui"),
		theme:      th,
		toasts:     toast.New(th.Toast, 4),
		events:     eventviewer.NewModel(400),
		showEvents: opts.Debug,
		guide:      guide.New(80, 20),
		help:       help.New(),
		keys:       DefaultKeyMap(),
		changes: map[string]<-chan entitystore.ChangeMsg{
			svc.Inmates.Name():  svc.Inmates.Events(),
			svc.Staff.Name():    svc.Staff.Events(),
			svc.Visitors.Name(): svc.Visitors.Events(),
			svc.Cells.Name():    svc.Cells.Events(),
		},
	}

	m.facility = store.DefaultSettings().FacilityName
	if s, err := svc.Settings(); err == nil {
		m.facility = s.FacilityName
	}
	if session, err := svc.WhoAmI(); err == nil {
		m.signedIn = true
		m.user = session.User
	} else if !errors.Is(err, store.ErrNoSession) {
		m.logger.Warn("reading session", zap.Error(err))
	}
	if ch, err := svc.Watch(ctx); err == nil {
		m.local = ch
	} else {
		m.logger.Warn("watching local store", zap.Error(err))
	}

	m.login = login.New(svc.Login, m.facility, th)
	m.panels = []ui.Panel{
		dashboard.New(ctx, svc.Dashboard, th),
		inmatesPanel(ctx, svc, th),
		staffPanel(ctx, svc, th),
		visitorsPanel(ctx, svc, th),
		cellsPanel(ctx, svc, th),
		reports.New(ctx, m.generate, th),
		settings.New(svc, th),
	}
	titles := make([]string, len(m.panels))
	for i, p := range m.panels {
		titles[i] = p.Title()
	}
	m.sidebar = sidebar.New(th.Sidebar, titles...)
	return m
}

// Run launches the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(ctx, svc, opts)
	defer svc.UnmountAll()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Active returns the visible panel.
func (m *Model) Active() ui.Panel { return m.panels[m.active] }

// SignedIn reports whether the shell is past the login screen.
func (m *Model) SignedIn() bool { return m.signedIn }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		events.WaitForNotification(m.opts.Notifications),
		events.WaitForLocalChange(m.local),
	}
	for _, ch := range m.changes {
		cmds = append(cmds, events.WaitForChange(ch))
	}
	if m.signedIn {
		cmds = append(cmds, m.Active().Enter())
	} else {
		cmds = append(cmds, m.login.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil
	case events.NotificationMsg:
		cmd := m.toasts.Push(v.Notification)
		m.layout()
		return m, tea.Batch(cmd, events.WaitForNotification(m.opts.Notifications))
	case events.StoreChangeMsg:
		_, cmd := m.Active().Update(v)
		return m, tea.Batch(cmd, events.WaitForChange(m.changes[v.Kind]))
	case events.LocalChangeMsg:
		return m, tea.Batch(m.localChange(v), events.WaitForLocalChange(m.local))
	case events.LoginMsg:
		_, cmd := m.login.Update(v)
		if v.Err != nil {
			return m, cmd
		}
		m.signedIn = true
		m.user = v.Session.User
		m.layout()
		return m, m.Active().Enter()
	case events.LogoutMsg:
		return m, m.logout()
	case tea.KeyMsg:
		return m, m.handleKey(v)
	}

	var cmds []tea.Cmd
	if _, cmd := m.toasts.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.layout()
	if m.signedIn {
		_, cmd := m.Active().Update(msg)
		cmds = append(cmds, cmd)
	} else {
		_, cmd := m.login.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Events) {
		m.showEvents = !m.showEvents
		m.layout()
		return nil
	}
	if !m.signedIn {
		_, cmd := m.login.Update(msg)
		return cmd
	}
	if m.showGuide {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Quit) {
			m.showGuide = false
			return nil
		}
		_, cmd := m.guide.Update(msg)
		return cmd
	}
	panel := m.Active()
	if panel.Capturing() {
		_, cmd := panel.Update(msg)
		return cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showGuide = true
		m.guide.Jump(panel.Title())
		return nil
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	case key.Matches(msg, m.keys.Next):
		return m.switchTo(m.active + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.switchTo(m.active - 1)
	case key.Matches(msg, m.keys.Jump):
		return m.switchTo(int(msg.Runes[0] - '1'))
	}
	_, cmd := panel.Update(msg)
	return cmd
}

// switchTo leaves the active panel and enters panel i, wrapping around.
func (m *Model) switchTo(i int) tea.Cmd {
	n := len(m.panels)
	i = (i%n + n) % n
	if i == m.active {
		return nil
	}
	m.Active().Leave()
	m.active = i
	m.sidebar.Select(i)
	m.layout()
	return m.Active().Enter()
}

func (m *Model) logout() tea.Cmd {
	if err := m.svc.Logout(); err != nil {
		m.logger.Warn("logout", zap.Error(err))
	}
	m.endSession()
	return m.login.Init()
}

func (m *Model) endSession() {
	m.Active().Leave()
	m.svc.UnmountAll()
	m.showGuide = false
	m.signedIn = false
	m.user = ""
	m.active = 0
	m.sidebar.Select(0)
	m.login.Reset()
}

func (m *Model) localChange(msg events.LocalChangeMsg) tea.Cmd {
	switch msg.Event.Type {
	case store.EventSessionChanged:
		// Another process logged in or out.
		session, err := m.svc.WhoAmI()
		switch {
		case err == nil && !m.signedIn:
			m.signedIn = true
			m.user = session.User
			m.layout()
			return m.Active().Enter()
		case err == nil:
			m.user = session.User
		case errors.Is(err, store.ErrNoSession) && m.signedIn:
			m.endSession()
			return m.login.Init()
		}
		return nil
	default:
		if s, err := m.svc.Settings(); err == nil {
			m.facility = s.FacilityName
		}
	}
	if !m.signedIn {
		return nil
	}
	_, cmd := m.Active().Update(msg)
	return cmd
}

// generate writes the workbook into the report directory.
func (m *Model) generate(ctx context.Context, t report.Type, rng report.Range) (string, error) {
	dir := m.opts.ReportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.xlsx", t, time.Now().Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := m.svc.Report(ctx, f, t, rng); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (m *Model) noteEvent(msg tea.Msg) {
	if !m.showEvents {
		return
	}
	switch msg.(type) {
	case spinner.TickMsg:
		return
	}
	m.events.Note(msg)
}

func (m *Model) eventsHeight(rows int) int {
	if !m.showEvents || rows <= 8 {
		return 0
	}
	return min(max(rows/3, 5), 12)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.login.SetSize(m.width, m.height)
	m.toasts.SetSize(m.width, 0)

	// header + footer
	rows := m.height - 2 - m.toasts.Height()
	debug := m.eventsHeight(rows)
	if debug > 0 {
		m.events.SetSize(m.width, debug)
		rows -= debug
	}
	rows = max(rows, 1)
	m.sidebar.SetSize(m.sidebar.Width(), rows)
	content := max(m.width-m.sidebar.Width()-1, 1)
	for _, p := range m.panels {
		p.SetSize(content, rows)
	}
	m.guide.SetSize(content, rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.signedIn {
		v := m.login.View()
		if toasts := m.toasts.View(); toasts != "" {
			v = toasts + "\n" + v
		}
		return v
	}

	parts := []string{m.headerView()}
	if toasts := m.toasts.View(); toasts != "" {
		parts = append(parts, toasts)
	}
	content := m.Active().View()
	if m.showGuide {
		content = m.guide.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), " ", content)
	parts = append(parts, body)
	if m.showEvents && m.eventsHeight(m.height-2-m.toasts.Height()) > 0 {
		parts = append(parts, m.events.View())
	}
	parts = append(parts, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) headerView() string {
	th := m.theme.Header
	left := th.Bar.Render(m.facility + " · " + m.Active().Title())
	right := th.User.Render(m.user)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return left
	}
	return left + th.Bar.UnsetBold().UnsetPadding().Render(strings.Repeat(" ", gap)) + right
}

func (m *Model) footerView() string {
	if m.showGuide {
		return m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "scroll")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
		})
	}
	bindings := append(m.Active().Keys(), m.keys.Next, m.keys.Jump, m.keys.Help, m.keys.Events, m.keys.Logout, m.keys.Quit)
	m.help.Width = m.width
	return m.help.ShortHelpView(bindings)
}

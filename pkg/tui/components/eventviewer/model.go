package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/ui"
)

// Level indicates the severity of a logged event.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelWarn highlights potential issues.
	LevelWarn
	// LevelError highlights failures.
	LevelError
)

// Entry captures a rendered event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Model renders a streaming event log, newest first.
type Model struct {
	viewport viewport.Model
	entries  []Entry

	maxEntries int

	width  int
	height int

	styles Styles
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	return Styles{
		Frame:     border,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NewModel constructs an event viewer capped at the provided entry count.
func NewModel(maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Model{
		viewport:   viewport.New(1, 1),
		maxEntries: maxEntries,
		styles:     DefaultStyles(),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. The log is passive; keys scroll the
// viewport only when the owner forwards them.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	width = max(width, 4)
	height = max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	m.viewport.Width = max(1, width-2)
	m.viewport.Height = max(1, height-3)
	m.refreshContent()
}

// View renders the bordered viewport.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.styles.Header.Render(fmt.Sprintf("Events (%d)", len(m.entries)))
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Width(m.width - 2).Height(m.height - 2).Render(body)
}

// Append inserts a new entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.refreshContent()
	m.viewport.GotoTop()
}

// Entries returns the logged entries, newest first.
func (m *Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Clear drops all logged entries.
func (m *Model) Clear() {
	m.entries = nil
	m.refreshContent()
}

// Note logs msg, using its Describe method when it has one.
func (m *Model) Note(msg tea.Msg) {
	m.Append(Entry{
		Source:  source(msg),
		Summary: fmt.Sprintf("%T", msg),
		Detail:  Describe(msg),
		Level:   levelOf(msg),
	})
}

// Describe renders msg for the log.
func Describe(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	default:
		return ""
	}
}

func source(msg tea.Msg) string {
	switch v := msg.(type) {
	case events.StoreChangeMsg:
		return v.Kind
	case events.LoadedMsg:
		return string(v.Component)
	case events.DoneMsg:
		return string(v.Component)
	case events.FormSubmitMsg:
		return string(v.Component)
	case events.FormCancelMsg:
		return string(v.Component)
	case events.NotificationMsg:
		return "notify"
	case events.LocalChangeMsg:
		return "store"
	default:
		return "tea"
	}
}

func levelOf(msg tea.Msg) Level {
	switch v := msg.(type) {
	case events.NotificationMsg:
		if v.Severity == notify.Error {
			return LevelError
		}
	case events.LoadedMsg:
		if v.Err != nil {
			return LevelWarn
		}
	case events.DoneMsg:
		if v.Err != nil {
			return LevelWarn
		}
	}
	return LevelInfo
}

func (m *Model) refreshContent() {
	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		lines = append(lines, m.renderEntry(entry))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderEntry(entry Entry) string {
	ts := m.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05.000"))
	src := m.styles.Source.Render(fmt.Sprintf("[%s]", entry.Source))
	msg := entry.Summary
	if entry.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, entry.Detail)
	}
	if avail := m.viewport.Width - lipgloss.Width(ts) - lipgloss.Width(src) - 2; avail > 16 {
		msg = wordwrap.String(msg, avail)
	}
	switch entry.Level {
	case LevelWarn:
		msg = m.styles.Warn.Render(msg)
	case LevelError:
		msg = m.styles.Error.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, src, msg)
}

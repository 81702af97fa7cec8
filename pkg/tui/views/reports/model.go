// Package reports is the panel that exports Excel workbooks.
package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/report"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// ID identifies the reports panel in events.
const ID events.ComponentID = "reports"

// GenerateFunc writes the report and returns where it was saved.
type GenerateFunc func(ctx context.Context, t report.Type, rng report.Range) (string, error)

type generatedMsg struct {
	path string
	err  error
}

// KeyMap lists the panel bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	From     key.Binding
	To       key.Binding
	Generate key.Binding
	Done     key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "report")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		From:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "from date")),
		To:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "to date")),
		Generate: key.NewBinding(key.WithKeys("enter", "g"), key.WithHelp("enter", "generate")),
		Done:     key.NewBinding(key.WithKeys("enter", "esc", "tab"), key.WithHelp("enter", "done")),
	}
}

// Model is the reports panel.
type Model struct {
	ctx      context.Context
	generate GenerateFunc
	types    []report.Type
	cursor   int

	from    textinput.Model
	to      textinput.Model
	editing *textinput.Model

	busy bool
	last string
	err  string

	keys   KeyMap
	width  int
	height int
	theme  theme.Theme
}

// New returns the reports panel.
func New(ctx context.Context, generate GenerateFunc, th theme.Theme) *Model {
	from := textinput.New()
	from.Prompt = "From "
	from.Placeholder = "YYYY-MM-DD"
	from.CharLimit = 10
	to := textinput.New()
	to.Prompt = "To   "
	to.Placeholder = "YYYY-MM-DD"
	to.CharLimit = 10
	return &Model{
		ctx:      ctx,
		generate: generate,
		types:    report.Types(),
		from:     from,
		to:       to,
		keys:     DefaultKeyMap(),
		theme:    th,
	}
}

// Title implements ui.Panel.
func (m *Model) Title() string { return "Reports" }

// Capturing implements ui.Panel.
func (m *Model) Capturing() bool { return m.editing != nil }

// Keys implements ui.Panel.
func (m *Model) Keys() []key.Binding {
	if m.editing != nil {
		return []key.Binding{m.keys.Done}
	}
	return []key.Binding{m.keys.Up, m.keys.From, m.keys.To, m.keys.Generate}
}

// Selected returns the highlighted report type.
func (m *Model) Selected() report.Type { return m.types[m.cursor] }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Enter implements ui.Panel.
func (m *Model) Enter() tea.Cmd { return nil }

// Leave implements ui.Panel.
func (m *Model) Leave() {
	m.stopEditing()
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case generatedMsg:
		m.busy = false
		if v.err != nil {
			m.err = v.err.Error()
			m.last = ""
		} else {
			m.err = ""
			m.last = v.path
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing != nil {
			if key.Matches(v, m.keys.Done) {
				m.stopEditing()
				return m, nil
			}
			var cmd tea.Cmd
			*m.editing, cmd = m.editing.Update(v)
			return m, cmd
		}
		switch {
		case key.Matches(v, m.keys.Up):
			m.cursor = (m.cursor - 1 + len(m.types)) % len(m.types)
		case key.Matches(v, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(m.types)
		case key.Matches(v, m.keys.From):
			m.editing = &m.from
			return m, m.from.Focus()
		case key.Matches(v, m.keys.To):
			m.editing = &m.to
			return m, m.to.Focus()
		case key.Matches(v, m.keys.Generate):
			return m, m.start()
		}
	}
	return m, nil
}

func (m *Model) stopEditing() {
	m.from.Blur()
	m.to.Blur()
	m.editing = nil
}

func (m *Model) start() tea.Cmd {
	if m.busy {
		return nil
	}
	rng, err := report.ParseRange(strings.TrimSpace(m.from.Value()), strings.TrimSpace(m.to.Value()))
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.busy = true
	m.err = ""
	generate, ctx, t := m.generate, m.ctx, m.Selected()
	return func() tea.Msg {
		path, err := generate(ctx, t, rng)
		return generatedMsg{path: path, err: err}
	}
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements ui.Component.
func (m *Model) View() string {
	th := m.theme.Panel
	lines := []string{th.Title.Render("Reports"), ""}
	for i, t := range m.types {
		line := fmt.Sprintf("%-26s %s", t.Title(), th.Faint.Render(t.Description()))
		if i == m.cursor {
			lines = append(lines, th.Active.Render("› ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}
	lines = append(lines, "", th.Title.Render("Date range"), m.from.View(), m.to.View(), "")

	switch {
	case m.busy:
		lines = append(lines, th.Faint.Render("Generating "+m.Selected().Title()+"…"))
	case m.err != "":
		lines = append(lines, m.theme.Form.Error.Render(m.err))
	case m.last != "":
		lines = append(lines, m.theme.Status.Good.Render("Saved "+m.last))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Package form is a keyboard driven form of text and choice fields. A choice
// field may depend on the other answers, like the cell picker depending on
// the chosen block.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// Kind selects the input used for a field.
type Kind int

const (
	Text Kind = iota
	Number
	Password
	Choice
)

// Field describes one question.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	// Options lists the choices of a Choice field given the current answers.
	Options func(values map[string]string) []string
}

// KeyMap lists the form bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "choose")),
		Right:  key.NewBinding(key.WithKeys("right")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Model is a form. It emits events.FormSubmitMsg and events.FormCancelMsg.
type Model struct {
	id     events.ComponentID
	title  string
	fields []Field
	inputs []textinput.Model
	values map[string]string
	focus  int
	err    string
	dirty  bool
	width  int

	keys   KeyMap
	styles theme.FormTheme
	modal  theme.ModalTheme
}

// New builds a form. The first field has focus.
func New(id events.ComponentID, title string, th theme.Theme, fields ...Field) *Model {
	m := &Model{
		id:     id,
		title:  title,
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
		values: map[string]string{},
		keys:   DefaultKeyMap(),
		styles: th.Form,
		modal:  th.Modal,
		width:  48,
	}
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Placeholder
		in.CharLimit = 128
		in.Width = m.width - 4
		switch f.Kind {
		case Password:
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		case Number:
			in.CharLimit = 9
		}
		m.inputs[i] = in
	}
	m.setFocus(0)
	return m
}

// ID returns the component id carried by the form events.
func (m *Model) ID() events.ComponentID { return m.id }

// Keys returns the form key map.
func (m *Model) Keys() KeyMap { return m.keys }

// Dirty reports whether any answer changed since the last SetValues.
func (m *Model) Dirty() bool { return m.dirty }

// SetError shows err under the form. Choices that are no longer offered
// are cleared, since a failed submit often follows a change elsewhere.
func (m *Model) SetError(err string) {
	m.err = err
	m.reconcile()
}

// Focused returns the name of the focused field.
func (m *Model) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].Name
}

// SetValues replaces the answers.
func (m *Model) SetValues(values map[string]string) {
	for i, f := range m.fields {
		v := values[f.Name]
		if f.Kind == Choice {
			m.values[f.Name] = v
			continue
		}
		m.inputs[i].SetValue(v)
	}
	m.reconcile()
	m.dirty = false
}

// Values returns the trimmed answers by field name.
func (m *Model) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		if f.Kind == Choice {
			out[f.Name] = m.values[f.Name]
			continue
		}
		out[f.Name] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

// Options returns the current choices of the named field.
func (m *Model) Options(name string) []string {
	for _, f := range m.fields {
		if f.Name == name && f.Options != nil {
			return f.Options(m.Values())
		}
	}
	return nil
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInput(msg)
	}
	switch {
	case key.Matches(km, m.keys.Cancel):
		id := m.id
		return m, func() tea.Msg { return events.FormCancelMsg{Component: id} }
	case key.Matches(km, m.keys.Submit):
		return m, m.submit()
	case km.Type == tea.KeyEnter && m.focus == len(m.fields)-1:
		return m, m.submit()
	case key.Matches(km, m.keys.Next):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(km, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	f := m.fields[m.focus]
	if f.Kind == Choice {
		switch {
		case key.Matches(km, m.keys.Left):
			m.cycle(f, -1)
		case key.Matches(km, m.keys.Right), km.String() == " ":
			m.cycle(f, 1)
		}
		return m, nil
	}
	if f.Kind == Number && km.Type == tea.KeyRunes {
		for _, r := range km.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}
	return m, m.updateInput(msg)
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	if len(m.fields) == 0 || m.fields[m.focus].Kind == Choice {
		return nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.dirty = true
		m.err = ""
		m.reconcile()
	}
	return cmd
}

func (m *Model) cycle(f Field, step int) {
	opts := m.Options(f.Name)
	if len(opts) == 0 {
		return
	}
	cur := -1
	for i, o := range opts {
		if o == m.values[f.Name] {
			cur = i
		}
	}
	next := cur + step
	if cur < 0 && step < 0 {
		next = len(opts) - 1
	}
	next = (next + len(opts)) % len(opts)
	m.values[f.Name] = opts[next]
	m.dirty = true
	m.err = ""
	m.reconcile()
}

// reconcile clears choices that are no longer offered.
func (m *Model) reconcile() {
	for _, f := range m.fields {
		if f.Kind != Choice || f.Options == nil || m.values[f.Name] == "" {
			continue
		}
		offered := false
		for _, o := range f.Options(m.Values()) {
			if o == m.values[f.Name] {
				offered = true
				break
			}
		}
		if !offered {
			m.values[f.Name] = ""
		}
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	i = (i + len(m.fields)) % len(m.fields)
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i && m.fields[j].Kind != Choice {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *Model) submit() tea.Cmd {
	values := m.Values()
	for _, f := range m.fields {
		if f.Kind != Number || values[f.Name] == "" {
			continue
		}
		if _, err := strconv.Atoi(values[f.Name]); err != nil {
			m.err = fmt.Sprintf("%s must be a number", f.Label)
			return nil
		}
	}
	id := m.id
	return func() tea.Msg { return events.FormSubmitMsg{Component: id, Values: values} }
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, _ int) {
	m.width = min(max(width-8, 24), 64)
	for i := range m.inputs {
		m.inputs[i].Width = m.width - 4
	}
}

// View renders the form inside a modal frame.
func (m *Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.modal.Title.Render(m.title))
		b.WriteString("\n\n")
	}
	for i, f := range m.fields {
		label := m.styles.Label
		marker := "  "
		if i == m.focus {
			label = m.styles.Focused
			marker = "› "
		}
		title := f.Label
		if f.Required {
			title += m.styles.Required.Render(" *")
		}
		b.WriteString(marker + label.Render(title) + "\n")
		if f.Kind == Choice {
			b.WriteString("  " + m.choiceView(f, i == m.focus) + "\n")
		} else {
			b.WriteString("  " + m.inputs[i].View() + "\n")
		}
	}
	if m.err != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.err) + "\n")
	}
	b.WriteString("\n" + m.styles.Label.Render("tab next • ←/→ choose • ctrl+s save • esc cancel"))
	return m.modal.Frame.Width(m.width).Render(b.String())
}

func (m *Model) choiceView(f Field, focused bool) string {
	v := m.values[f.Name]
	opts := m.Options(f.Name)
	switch {
	case len(opts) == 0:
		return m.styles.Label.Render("(none available)")
	case v == "":
		v = m.styles.Label.Render("select…")
	default:
		v = m.styles.Option.Render(v)
	}
	if focused {
		return lipgloss.JoinHorizontal(lipgloss.Top, "‹ ", v, " ›")
	}
	return v
}

// Package login is the sign-in screen shown when nobody is logged in.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// Func checks the credentials and records the session.
type Func func(user, password string) (store.Session, error)

// Model is the login screen.
type Model struct {
	user     textinput.Model
	password textinput.Model
	focus    int
	err      string
	busy     bool
	facility string

	login  Func
	width  int
	height int
	theme  theme.Theme
}

// New returns a login screen titled with the facility name.
func New(login Func, facility string, th theme.Theme) *Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "User      "
	user.CharLimit = 64
	user.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 64

	return &Model{user: user, password: password, login: login, facility: facility, theme: th}
}

// Reset clears the inputs and the error, for a fresh login after logout.
func (m *Model) Reset() {
	m.user.SetValue("")
	m.password.SetValue("")
	m.err = ""
	m.busy = false
	m.focus = 0
	m.user.Focus()
	m.password.Blur()
}

// Err returns the message shown under the inputs.
func (m *Model) Err() string { return m.err }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.LoginMsg:
		m.busy = false
		if v.Err != nil {
			m.err = v.Err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		switch v.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return m, m.toggle()
		case tea.KeyEnter:
			if m.focus == 0 {
				return m, m.toggle()
			}
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.user, cmd = m.user.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggle() tea.Cmd {
	if m.focus == 0 {
		m.focus = 1
		m.user.Blur()
		return m.password.Focus()
	}
	m.focus = 0
	m.password.Blur()
	return m.user.Focus()
}

func (m *Model) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	user, password := m.user.Value(), m.password.Value()
	if strings.TrimSpace(user) == "" || strings.TrimSpace(password) == "" {
		m.err = "Please enter both username and password"
		return nil
	}
	m.busy = true
	m.err = ""
	login := m.login
	return func() tea.Msg {
		s, err := login(user, password)
		return events.LoginMsg{Session: s, Err: err}
	}
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements ui.Component.
func (m *Model) View() string {
	title := m.theme.Modal.Title.Render(m.facility)
	sub := m.theme.Panel.Faint.Render("Sign in to continue")
	body := lipgloss.JoinVertical(lipgloss.Left, title, sub, "", m.user.View(), m.password.View())
	if m.err != "" {
		body += "\n\n" + m.theme.Form.Error.Render(m.err)
	}
	body += "\n\n" + m.theme.Footer.Help.Render("tab switch • enter sign in • ctrl+c quit")
	box := m.theme.Modal.Frame.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

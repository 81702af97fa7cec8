// Package settings is the panel that edits the facility settings saved on
// this machine.
package settings

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/components/form"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// ID identifies the settings panel in events.
const ID events.ComponentID = "settings"

// Backend reads and writes the settings.
type Backend interface {
	Settings() (store.Settings, error)
	SaveSettings(store.Settings) error
	ResetSettings() (store.Settings, error)
}

var toggle = func(map[string]string) []string { return []string{"true", "false"} }

// fields lists the settings in display order.
var fields = []form.Field{
	{Name: "facilityName", Label: "Facility name", Required: true},
	{Name: "facilityAddress", Label: "Address"},
	{Name: "adminEmail", Label: "Admin email"},
	{Name: "maxCapacity", Label: "Maximum capacity", Kind: form.Number, Required: true},
	{Name: "visitorHours", Label: "Visitor hours"},
	{Name: "emergencyContact", Label: "Emergency contact"},
	{Name: "sessionTimeout", Label: "Session timeout (minutes)", Kind: form.Number, Required: true},
	{Name: "passwordPolicy", Label: "Password policy", Kind: form.Choice,
		Options: func(map[string]string) []string { return store.PasswordPolicies }},
	{Name: "autoBackup", Label: "Automatic backup", Kind: form.Choice, Options: toggle},
	{Name: "emailNotifications", Label: "Email notifications", Kind: form.Choice, Options: toggle},
	{Name: "smsAlerts", Label: "SMS alerts", Kind: form.Choice, Options: toggle},
	{Name: "maintenanceMode", Label: "Maintenance mode", Kind: form.Choice, Options: toggle},
	{Name: "auditLogging", Label: "Audit logging", Kind: form.Choice, Options: toggle},
}

type doneMsg struct {
	settings store.Settings
	err      error
}

// Model is the settings panel.
type Model struct {
	backend Backend
	form    *form.Model
	current store.Settings
	editing bool
	err     string

	edit  key.Binding
	reset key.Binding

	width  int
	height int
	theme  theme.Theme
}

// New returns the settings panel.
func New(backend Backend, th theme.Theme) *Model {
	return &Model{
		backend: backend,
		form:    form.New(ID, "Facility Settings", th, fields...),
		edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset to defaults")),
		theme:   th,
	}
}

// Title implements ui.Panel.
func (m *Model) Title() string { return "Settings" }

// Capturing implements ui.Panel.
func (m *Model) Capturing() bool { return m.editing }

// Keys implements ui.Panel.
func (m *Model) Keys() []key.Binding {
	if m.editing {
		k := m.form.Keys()
		return []key.Binding{k.Next, k.Left, k.Submit, k.Cancel}
	}
	return []key.Binding{m.edit, m.reset}
}

// Current returns the settings shown when not editing.
func (m *Model) Current() store.Settings { return m.current }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Enter implements ui.Panel.
func (m *Model) Enter() tea.Cmd {
	m.load()
	return nil
}

// Leave implements ui.Panel: unsaved edits are dropped.
func (m *Model) Leave() {
	m.editing = false
}

func (m *Model) load() {
	s, err := m.backend.Settings()
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.show(s)
}

func (m *Model) show(s store.Settings) {
	m.current = s
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name], _ = s.Get(f.Name)
	}
	m.form.SetValues(values)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.LocalChangeMsg:
		if v.Event.Type != store.EventSessionChanged && !(m.editing && m.form.Dirty()) {
			m.load()
		}
		return m, nil
	case events.FormSubmitMsg:
		if v.Component != ID {
			return m, nil
		}
		next := m.current
		for name, value := range v.Values {
			if err := next.Set(name, value); err != nil {
				m.form.SetError(err.Error())
				return m, nil
			}
		}
		backend := m.backend
		return m, func() tea.Msg { return doneMsg{settings: next, err: backend.SaveSettings(next)} }
	case events.FormCancelMsg:
		if v.Component == ID {
			m.editing = false
			m.show(m.current)
		}
		return m, nil
	case doneMsg:
		if v.err != nil {
			m.form.SetError(v.err.Error())
			return m, nil
		}
		m.editing = false
		m.show(v.settings)
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			_, cmd := m.form.Update(v)
			return m, cmd
		}
		switch {
		case key.Matches(v, m.edit):
			m.editing = true
			return m, m.form.Init()
		case key.Matches(v, m.reset):
			backend := m.backend
			return m, func() tea.Msg {
				s, err := backend.ResetSettings()
				return doneMsg{settings: s, err: err}
			}
		}
		return m, nil
	}
	if m.editing {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetSize(width, height)
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.editing {
		return m.form.View()
	}
	th := m.theme.Panel
	lines := []string{th.Title.Render("Facility Settings"), ""}
	for _, f := range fields {
		v, _ := m.current.Get(f.Name)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.Form.Label.Width(28).Render(f.Label), v))
	}
	if m.err != "" {
		lines = append(lines, "", m.theme.Form.Error.Render(m.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Package dashboard is the home panel: headline counters, block occupancy,
// staff on hand and the weekly activity.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/report"
	"tableflip.dev/warden/pkg/tui/components/panel"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// ID identifies the dashboard in events.
const ID events.ComponentID = "dashboard"

// LoadFunc fetches the dashboard content.
type LoadFunc func(ctx context.Context) (app.Dashboard, error)

type loadedMsg struct {
	dashboard app.Dashboard
	err       error
}

// Model is the dashboard panel.
type Model struct {
	ctx     context.Context
	load    LoadFunc
	data    app.Dashboard
	loaded  bool
	err     error
	spinner spinner.Model
	reload  key.Binding

	width  int
	height int
	theme  theme.Theme
}

// New returns the dashboard panel.
func New(ctx context.Context, load LoadFunc, th theme.Theme) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctx:     ctx,
		load:    load,
		spinner: sp,
		reload:  key.NewBinding(key.WithKeys("ctrl+r", "r"), key.WithHelp("r", "refresh")),
		theme:   th,
	}
}

// Title implements ui.Panel.
func (m *Model) Title() string { return "Dashboard" }

// Capturing implements ui.Panel.
func (m *Model) Capturing() bool { return false }

// Keys implements ui.Panel.
func (m *Model) Keys() []key.Binding { return []key.Binding{m.reload} }

// Data returns the last loaded content.
func (m *Model) Data() app.Dashboard { return m.data }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Enter implements ui.Panel.
func (m *Model) Enter() tea.Cmd {
	m.loaded = false
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

// Leave implements ui.Panel.
func (m *Model) Leave() {}

func (m *Model) fetch() tea.Cmd {
	load, ctx := m.load, m.ctx
	return func() tea.Msg {
		d, err := load(ctx)
		return loadedMsg{dashboard: d, err: err}
	}
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case loadedMsg:
		m.loaded = true
		m.err = v.err
		if v.err == nil {
			m.data = v.dashboard
		}
	case spinner.TickMsg:
		if !m.loaded {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(v)
			return m, cmd
		}
	case tea.KeyMsg:
		if key.Matches(v, m.reload) {
			return m, m.fetch()
		}
	}
	return m, nil
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements ui.Component.
func (m *Model) View() string {
	if !m.loaded {
		return m.spinner.View() + " Loading dashboard…"
	}
	s := m.data.Summary
	cards := panel.Cards(m.theme.Card, m.width,
		panel.Card{Label: "Total Inmates", Value: strconv.Itoa(s.TotalInmates)},
		panel.Card{Label: "Active Staff", Value: strconv.Itoa(s.ActiveStaff)},
		panel.Card{Label: "Daily Visitors", Value: strconv.Itoa(s.DailyVisitors)},
		panel.Card{Label: "Available Cells", Value: strconv.Itoa(s.AvailableCells)},
	)

	blocks := panel.New(m.theme.Panel)
	blocks.SetContent("Cell Block Occupancy", m.blockLines())
	staff := panel.New(m.theme.Panel)
	staff.SetContent("Staff Status", m.staffLines())
	weekly := panel.New(m.theme.Panel)
	weekly.SetContent("Weekly Activity", m.weeklyLines())

	bv, _ := blocks.View()
	sv, _ := staff.View()
	wv, _ := weekly.View()
	parts := []string{cards, lipgloss.JoinHorizontal(lipgloss.Top, bv, sv), wv}
	if m.err != nil {
		parts = append(parts, m.theme.Form.Error.Render("Showing the last loaded figures; press r to retry."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) blockLines() []string {
	if len(m.data.Blocks) == 0 {
		return []string{m.theme.Panel.Faint.Render("no cell blocks")}
	}
	lines := make([]string, 0, len(m.data.Blocks))
	for _, b := range m.data.Blocks {
		lines = append(lines, fmt.Sprintf("%-10s %s %3d%%  %d/%d  %s",
			b.Name, bar(b.Utilization, 20), b.Utilization, b.Current, b.Capacity,
			m.theme.Status.Render(report.Load(b.Utilization))))
	}
	return lines
}

func (m *Model) staffLines() []string {
	if len(m.data.StaffStatus) == 0 {
		return []string{m.theme.Panel.Faint.Render("no staff figures")}
	}
	lines := make([]string, 0, len(m.data.StaffStatus))
	for _, s := range m.data.StaffStatus {
		lines = append(lines, fmt.Sprintf("%-12s %4d", s.Name, s.Value))
	}
	return lines
}

func (m *Model) weeklyLines() []string {
	lines := []string{m.theme.Panel.Faint.Render(fmt.Sprintf("%-5s %10s %9s %9s %10s", "Day", "Admissions", "Releases", "Visitors", "Incidents"))}
	for _, w := range m.data.Weekly {
		lines = append(lines, fmt.Sprintf("%-5s %10d %9d %9d %10d", w.Day, w.Admissions, w.Releases, w.Visitors, w.Incidents))
	}
	return lines
}

// bar draws a utilization percentage as a fixed width gauge.
func bar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

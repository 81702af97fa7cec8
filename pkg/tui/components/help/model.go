// Package help renders the keyboard guide as an overlay.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/tui/ui"
)

//go:embed help.md
var helpMarkdown string

// Model renders the Glamour-based help overlay inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
	lines []string
	err   error
}

// New constructs a help overlay model sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(max(width, 1), max(height, 1))
	vp.MouseWheelEnabled = true
	model := &Model{
		viewport: vp,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	model.SetSize(width, height)
	return model
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width - m.frame.GetHorizontalBorderSize()).Render(body)
}

// Jump scrolls to the first heading that mentions topic, or to the top when
// none does.
func (m *Model) Jump(topic string) bool {
	topic = strings.ToLower(topic)
	for i, line := range m.lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "#") && strings.Contains(strings.ToLower(l), topic) {
			m.viewport.SetYOffset(i)
			return true
		}
	}
	m.viewport.GotoTop()
	return false
}

// Err returns the markdown rendering error, if any.
func (m *Model) Err() error { return m.err }

// SetSize configures the overlay dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.Width = innerWidth
	m.viewport.Height = max(height-m.frame.GetVerticalFrameSize(), 1)
	m.renderContent(innerWidth)
}

func (m *Model) renderContent(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	m.err = nil
	content = stripANSI(content)
	m.lines = strings.Split(content, "\n")
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(0)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

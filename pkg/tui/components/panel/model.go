// Package panel renders framed boxes: the dashboard counters and titled
// lists.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/tui/theme"
)

// Card shows one headline counter.
type Card struct {
	Label string
	Value string
	Note  string
}

// Cards renders cards side by side, sharing width evenly.
func Cards(th theme.CardTheme, width int, cards ...Card) string {
	if len(cards) == 0 {
		return ""
	}
	each := max(width/len(cards)-th.Frame.GetHorizontalFrameSize(), 12)
	views := make([]string, len(cards))
	for i, c := range cards {
		body := th.Label.Render(c.Label) + "\n" + th.Value.Render(c.Value)
		if c.Note != "" {
			body += "\n" + th.Label.Render(c.Note)
		}
		views[i] = th.Frame.Width(each).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// Model renders a titled box of body lines.
type Model struct {
	title  string
	lines  []string
	width  int
	styles theme.PanelTheme
}

// New returns an empty panel.
func New(th theme.PanelTheme) Model {
	return Model{styles: th}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetWidth fixes the outer width; zero fits the content.
func (m *Model) SetWidth(width int) { m.width = width }

// View returns the rendered panel and its height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.styles.Title.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.styles.Body.Render(line))
	}
	frame := m.styles.Frame
	if m.width > frame.GetHorizontalFrameSize() {
		frame = frame.Width(m.width - frame.GetHorizontalFrameSize())
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}

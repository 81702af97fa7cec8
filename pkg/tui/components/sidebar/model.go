// Package sidebar renders the panel navigation of the dashboard shell.
package sidebar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// Model is a numbered list with one selected entry.
type Model struct {
	items    []string
	selected int
	width    int
	height   int
	styles   theme.SidebarTheme
}

// New returns a sidebar over items with the first one selected.
func New(th theme.SidebarTheme, items ...string) *Model {
	return &Model{items: items, styles: th}
}

// Selected returns the index of the selected entry.
func (m *Model) Selected() int { return m.selected }

// Select moves the selection to i, wrapping around either end.
func (m *Model) Select(i int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = (i + len(m.items)) % len(m.items)
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. Navigation keys are handled by the shell.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width is the rendered width including the frame.
func (m *Model) Width() int {
	w := 0
	for _, it := range m.items {
		w = max(w, len(it))
	}
	return w + 3 + m.styles.Frame.GetHorizontalFrameSize()
}

// View renders the entries, one per line.
func (m *Model) View() string {
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		line := fmt.Sprintf("%d %s", i+1, it)
		if i == m.selected {
			lines[i] = m.styles.Selected.Render(line)
		} else {
			lines[i] = m.styles.Item.Render(line)
		}
	}
	frame := m.styles.Frame
	if m.height > frame.GetVerticalFrameSize() {
		frame = frame.Height(m.height - frame.GetVerticalFrameSize())
	}
	return frame.Render(strings.Join(lines, "\n"))
}

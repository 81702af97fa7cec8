// Package toast renders notifications as a short-lived stack.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// DefaultTTL is how long a toast stays on screen.
const DefaultTTL = 4 * time.Second

// expireMsg removes the toast with the given notification id.
type expireMsg struct {
	id string
}

// Model keeps the visible toasts, newest last.
type Model struct {
	items []notify.Notification
	ttl   time.Duration
	limit int
	width int

	styles theme.ToastTheme
}

// New returns an empty stack showing at most limit toasts.
func New(th theme.ToastTheme, limit int) *Model {
	if limit <= 0 {
		limit = 3
	}
	return &Model{ttl: DefaultTTL, limit: limit, styles: th}
}

// SetTTL overrides DefaultTTL.
func (m *Model) SetTTL(d time.Duration) { m.ttl = d }

// Push shows n and schedules its removal.
func (m *Model) Push(n notify.Notification) tea.Cmd {
	m.items = append(m.items, n)
	if len(m.items) > m.limit {
		m.items = m.items[len(m.items)-m.limit:]
	}
	id := n.ID
	return tea.Tick(m.ttl, func(time.Time) tea.Msg { return expireMsg{id: id} })
}

// Items returns the visible notifications, oldest first.
func (m *Model) Items() []notify.Notification {
	return append([]notify.Notification(nil), m.items...)
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if v, ok := msg.(expireMsg); ok {
		for i, n := range m.items {
			if n.ID == v.id {
				m.items = append(m.items[:i], m.items[i+1:]...)
				break
			}
		}
	}
	return m, nil
}

// SetSize implements ui.Component; only the width matters.
func (m *Model) SetSize(width, _ int) { m.width = width }

// Height is the number of rows View renders.
func (m *Model) Height() int { return len(m.items) }

// View renders one line per toast, right aligned.
func (m *Model) View() string {
	if len(m.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.items))
	for _, n := range m.items {
		style := m.styles.Info
		mark := "i"
		switch n.Severity {
		case notify.Success:
			style, mark = m.styles.Success, "✓"
		case notify.Error:
			style, mark = m.styles.Error, "✗"
		}
		text := mark + " " + n.Title
		if n.Description != "" {
			text += ": " + n.Description
		}
		if w := m.width - style.GetHorizontalFrameSize(); m.width > 0 && w > 1 {
			// One line per toast keeps Height exact.
			text = truncate.StringWithTail(text, uint(w), "…")
		}
		line := style.Render(text)
		if m.width > 0 {
			line = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Component defines the contract for reusable Bubble Tea widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Panel is one entry of the dashboard sidebar. Enter is called when the panel
// becomes visible and Leave when another panel replaces it.
type Panel interface {
	Component
	Title() string
	Enter() tea.Cmd
	Leave()
	// Capturing reports whether the panel wants every key, for example while
	// a text input has focus.
	Capturing() bool
	Keys() []key.Binding
}

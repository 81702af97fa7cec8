package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header  HeaderTheme
	Sidebar SidebarTheme
	Footer  FooterTheme
	Panel   PanelTheme
	Card    CardTheme
	Toast   ToastTheme
	Modal   ModalTheme
	Form    FormTheme
	Status  StatusTheme
}

// HeaderTheme styles the top bar.
type HeaderTheme struct {
	Bar  lipgloss.Style
	User lipgloss.Style
}

// SidebarTheme styles the panel navigation.
type SidebarTheme struct {
	Frame    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Faint  lipgloss.Style
	Filter lipgloss.Style
	Active lipgloss.Style
}

// CardTheme styles the dashboard counters.
type CardTheme struct {
	Frame lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// ToastTheme styles notifications by severity.
type ToastTheme struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// ModalTheme styles centered modal overlays (forms, pickers, confirmations).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FormTheme styles form labels and errors.
type FormTheme struct {
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Required lipgloss.Style
	Error    lipgloss.Style
	Option   lipgloss.Style
}

// StatusTheme colors well known status values.
type StatusTheme struct {
	Good    lipgloss.Style
	Neutral lipgloss.Style
	Warn    lipgloss.Style
	Bad     lipgloss.Style
}

// Render colors a status value; unknown values are returned unchanged.
func (s StatusTheme) Render(v string) string {
	switch v {
	case "Active", "On Duty", "Available", "Completed", "Low":
		return s.Good.Render(v)
	case "Occupied", "Scheduled", "Training", "Normal":
		return s.Neutral.Render(v)
	case "Maintenance", "On Leave", "Transferred":
		return s.Warn.Render(v)
	case "Released", "Off Duty", "Closed", "Cancelled", "High":
		return s.Bad.Render(v)
	}
	return v
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("33")
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	rounded := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Header: HeaderTheme{
			Bar:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(accent).Padding(0, 1),
			User: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(accent).Padding(0, 1),
		},
		Sidebar: SidebarTheme{
			Frame:    rounded.Padding(0, 1),
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(accent).Reverse(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: faint,
		},
		Panel: PanelTheme{
			Frame:  rounded.Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Faint:  faint,
			Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Active: lipgloss.NewStyle().Bold(true).Foreground(accent),
		},
		Card: CardTheme{
			Frame: rounded.Padding(0, 2),
			Label: faint,
			Value: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		},
		Toast: ToastTheme{
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("28")).Padding(0, 1),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Padding(0, 1),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Focused:  lipgloss.NewStyle().Bold(true).Foreground(accent),
			Required: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		},
		Status: StatusTheme{
			Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Neutral: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
	}
}

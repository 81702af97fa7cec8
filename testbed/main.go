// Command testbed renders single dashboard components inside a frame, with
// the event log docked underneath, against sample data.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/tui/components/eventviewer"
	"tableflip.dev/warden/pkg/tui/ui"
)

type options struct {
	full   bool
	width  int
	height int
	fail   bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the TUI testbed harness",
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 100, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 24, "window height when not fullscreen")
	rootCmd.PersistentFlags().BoolVar(&opts.fail, "fail", false, "make every sample request fail")

	rootCmd.AddCommand(newCollectionCmd(&opts))
	rootCmd.AddCommand(newFormCmd(&opts))
	rootCmd.AddCommand(newToastCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// frame hosts one component and logs every message it sees.
type frame struct {
	opts    options
	content ui.Component
	events  *eventviewer.Model

	termWidth  int
	termHeight int
}

func newFrame(opts options, content ui.Component) *frame {
	return &frame{opts: opts, content: content, events: eventviewer.NewModel(400)}
}

func (f *frame) Init() tea.Cmd { return f.content.Init() }

func (f *frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	f.events.Note(msg)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.termWidth = msg.Width
		f.termHeight = msg.Height
		f.layout()
		return f, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return f, tea.Quit
		}
	}
	_, cmd := f.content.Update(msg)
	return f, cmd
}

func (f *frame) eventHeight() int {
	if f.termHeight < minFrameHeight+minEventHeight {
		return 0
	}
	return clamp(f.termHeight/4, minEventHeight, maxEventHeight)
}

func (f *frame) size() (int, int) {
	space := max(minFrameHeight, f.termHeight-f.eventHeight()-frameGap)
	if f.opts.full {
		return f.termWidth, space
	}
	return clamp(f.opts.width, 20, f.termWidth-4), clamp(f.opts.height, minFrameHeight, space)
}

func (f *frame) layout() {
	w, h := f.size()
	f.content.SetSize(max(1, w-2), max(1, h-2))
	if eh := f.eventHeight(); eh > 0 {
		f.events.SetSize(f.termWidth, eh)
	}
}

func (f *frame) View() string {
	if f.termWidth == 0 || f.termHeight == 0 {
		return "Resizing…"
	}
	w, h := f.size()
	inner := lipgloss.NewStyle().Width(max(1, w-2)).Height(max(1, h-2)).Render(f.content.View())
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(inner)
	placed := lipgloss.PlaceHorizontal(f.termWidth, lipgloss.Center, box)
	if f.eventHeight() == 0 {
		return placed
	}
	return lipgloss.JoinVertical(lipgloss.Left, placed, strings.Repeat(" ", frameGap), f.events.View())
}

func clamp(value, lower, upper int) int {
	if upper <= 0 {
		return lower
	}
	return min(max(value, lower), upper)
}

const (
	minFrameHeight = 12
	minEventHeight = 5
	maxEventHeight = 12
	frameGap       = 1
)

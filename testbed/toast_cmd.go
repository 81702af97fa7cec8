package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/components/toast"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

func newToastCmd(opts *options) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "toast",
		Short: "Stack notifications: i info, s success, e error",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := toast.New(theme.Default().Toast, 5)
			t.SetTTL(ttl)
			return run(newFrame(*opts, &toastHarness{toasts: t}))
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", toast.DefaultTTL, "how long each toast stays up")
	return cmd
}

type toastHarness struct {
	toasts *toast.Model
}

func (h *toastHarness) Init() tea.Cmd { return nil }

func (h *toastHarness) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "i":
			return h, h.toasts.Push(notify.New(notify.Info, "Info", "Settings reset to defaults"))
		case "s":
			return h, h.toasts.Push(notify.Successf("Inmate added successfully"))
		case "e":
			return h, h.toasts.Push(notify.Errorf("Failed to load inmates data"))
		case "q":
			return h, tea.Quit
		}
		return h, nil
	}
	_, cmd := h.toasts.Update(msg)
	return h, cmd
}

func (h *toastHarness) SetSize(width, _ int) { h.toasts.SetSize(width, 0) }

func (h *toastHarness) View() string {
	if h.toasts.Height() == 0 {
		return "press i, s or e to raise a toast, q to quit"
	}
	return h.toasts.View()
}

package main

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/tui/components/form"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

func newFormCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Render the admission form with block dependent cell choices",
		RunE: func(cmd *cobra.Command, args []string) error {
			picker := derive.NewCellPicker(sampleCells(*opts).items)
			f := form.New("testbed-form", "Add New Inmate", theme.Default(),
				form.Field{Name: "name", Label: "Full name", Required: true},
				form.Field{Name: "age", Label: "Age", Kind: form.Number, Required: true},
				form.Field{Name: "block", Label: "Block", Kind: form.Choice, Required: true,
					Options: func(map[string]string) []string { return picker.Blocks() }},
				form.Field{Name: "cell", Label: "Cell", Kind: form.Choice, Required: true,
					Options: func(v map[string]string) []string {
						picker.SetBlock(v["block"])
						return picker.Options()
					}},
				form.Field{Name: "charges", Label: "Charges", Required: true},
			)
			return run(newFrame(*opts, &formHarness{form: f}))
		},
	}
}

// formHarness shows the last submission under the form.
type formHarness struct {
	form *form.Model
	last string
}

func (h *formHarness) Init() tea.Cmd { return h.form.Init() }

func (h *formHarness) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.FormSubmitMsg:
		keys := make([]string, 0, len(v.Values))
		for k := range v.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%q", k, v.Values[k])
		}
		h.last = "submitted " + strings.Join(parts, " ")
		return h, nil
	case events.FormCancelMsg:
		return h, tea.Quit
	}
	_, cmd := h.form.Update(msg)
	return h, cmd
}

func (h *formHarness) SetSize(width, height int) { h.form.SetSize(width, height-2) }

func (h *formHarness) View() string {
	if h.last == "" {
		return h.form.View()
	}
	return h.form.View() + "\n\n" + h.last
}

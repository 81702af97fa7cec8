package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/components/form"
	"tableflip.dev/warden/pkg/tui/components/toast"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
	"tableflip.dev/warden/pkg/tui/views/collection"
)

func newCollectionCmd(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:       "collection",
		Short:     "Render a collection panel over sample cells or inmates",
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			th := theme.Default()
			notes := notify.NewChannel(16)

			var h *harness
			switch kind {
			case "cells":
				s := entitystore.New(app.CellKind, sampleCells(*opts), entitystore.WithSink(notes))
				h = newHarness(cellsView(ctx, s, th), s.Events(), notes.C(), th)
			case "inmates":
				s := entitystore.New(app.InmateKind, sampleInmates(*opts), entitystore.WithSink(notes))
				h = newHarness(inmatesView(ctx, s, th), s.Events(), notes.C(), th)
			default:
				return fmt.Errorf("unknown kind %q, want cells or inmates", kind)
			}
			return run(newFrame(*opts, h))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "cells", "cells or inmates")
	return cmd
}

func cellsView(ctx context.Context, s *entitystore.Store[facility.Cell], th theme.Theme) ui.Panel {
	return collection.New(ctx, collection.Config[facility.Cell]{
		ID:    "testbed-cells",
		Title: "Cells",
		Store: s,
		Columns: []table.Column{
			{Title: "Cell", Width: 8},
			{Title: "Block", Width: 6},
			{Title: "Occupancy", Width: 10},
			{Title: "Status", Width: 12},
		},
		Row: func(c facility.Cell) table.Row {
			return table.Row{c.CellNumber, c.Block, fmt.Sprintf("%d/%d", c.CurrentOccupancy, c.Capacity), string(c.Status)}
		},
		Key: func(c facility.Cell) string { return c.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllCellStatuses())},
			{Name: facility.FilterBlock, Key: "b"},
		},
		Statuses: func(c facility.Cell) []string {
			var out []string
			for _, st := range derive.StatusOptions(c) {
				out = append(out, string(st))
			}
			return out
		},
		Form: func() *form.Model {
			return form.New("testbed-cells-form", "Add Cell", th,
				form.Field{Name: "number", Label: "Cell number", Required: true},
				form.Field{Name: "block", Label: "Block", Required: true},
				form.Field{Name: "capacity", Label: "Capacity", Kind: form.Number, Required: true},
			)
		},
		Create: func(ctx context.Context, v map[string]string) error {
			capacity, _ := strconv.Atoi(v["capacity"])
			_, err := s.Add(ctx, facility.Cell{CellNumber: v["number"], Block: v["block"], Capacity: capacity})
			return err
		},
	}, th)
}

func inmatesView(ctx context.Context, s *entitystore.Store[facility.Inmate], th theme.Theme) ui.Panel {
	return collection.New(ctx, collection.Config[facility.Inmate]{
		ID:    "testbed-inmates",
		Title: "Inmates",
		Store: s,
		Columns: []table.Column{
			{Title: "Inmate ID", Width: 10},
			{Title: "Name", Width: 20},
			{Title: "Cell", Width: 8},
			{Title: "Status", Width: 12},
		},
		Row: func(i facility.Inmate) table.Row {
			return table.Row{i.InmateID, i.Name, i.CellNumber, string(i.Status)}
		},
		Key: func(i facility.Inmate) string { return i.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllInmateStatuses())},
		},
		Statuses: func(facility.Inmate) []string {
			var out []string
			for _, st := range facility.AllInmateStatuses() {
				out = append(out, string(st))
			}
			return out
		},
	}, th)
}

// harness drives one panel the way the dashboard shell does: it enters the
// panel and feeds it store changes and toasts.
type harness struct {
	panel   ui.Panel
	toasts  *toast.Model
	changes <-chan entitystore.ChangeMsg
	notes   <-chan notify.Notification
}

func newHarness(panel ui.Panel, changes <-chan entitystore.ChangeMsg, notes <-chan notify.Notification, th theme.Theme) *harness {
	return &harness{panel: panel, toasts: toast.New(th.Toast, 3), changes: changes, notes: notes}
}

func (h *harness) Init() tea.Cmd {
	return tea.Batch(h.panel.Enter(), events.WaitForChange(h.changes), events.WaitForNotification(h.notes))
}

func (h *harness) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.NotificationMsg:
		return h, tea.Batch(h.toasts.Push(v.Notification), events.WaitForNotification(h.notes))
	case events.StoreChangeMsg:
		_, cmd := h.panel.Update(v)
		return h, tea.Batch(cmd, events.WaitForChange(h.changes))
	}
	_, tc := h.toasts.Update(msg)
	_, pc := h.panel.Update(msg)
	return h, tea.Batch(tc, pc)
}

func (h *harness) SetSize(width, height int) {
	h.toasts.SetSize(width, 0)
	h.panel.SetSize(width, height)
}

func (h *harness) View() string {
	if t := h.toasts.View(); t != "" {
		return lipgloss.JoinVertical(lipgloss.Left, t, h.panel.View())
	}
	return h.panel.View()
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/printers"
)

func (c *cli) addCells(topLevel *cobra.Command) {
	k := kindCommands[facility.Cell]{
		cli:   c,
		noun:  "cell",
		store: func(s *app.Service) *entitystore.Store[facility.Cell] { return s.Cells },
		categories: map[string][]string{
			facility.FilterStatus: facility.FilterValues(facility.AllCellStatuses()),
			facility.FilterBlock:  nil,
			facility.FilterType:   facility.FilterValues(facility.AllCellTypes()),
		},
		statuses: facility.Strings(facility.AllCellStatuses()),
		print:    (*printers.Printer).Cells,
	}

	cmd := &cobra.Command{
		Use:     "cells",
		Aliases: []string{"cell"},
		Short:   "Manage cells and their availability",
		Example: `
warden cells list --block=A --status=Available
warden cells add --number=C-301 --block=C --capacity=2 --type=Medical
warden cells options 4
warden cells status 4 Maintenance
warden cells eligible A
`,
	}
	cmd.AddCommand(k.list(), c.addCell(), k.remove(), k.status(), c.cellOptions(), c.eligibleCells())
	topLevel.AddCommand(cmd)
}

func (c *cli) addCell() *cobra.Command {
	o := &options.CellOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an empty cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				draft, err := o.Draft()
				if err != nil {
					return err
				}
				added, err := rt.svc.Cells.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				return rt.printer.Cells([]facility.Cell{added})
			})
		},
	}

	options.AddCellArgs(cmd, o)
	return cmd
}

func (c *cli) cellOptions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options ID",
		Short: "Show the statuses a cell may be switched to",
		Long: `Show the statuses a cell may be switched to. An occupied cell cannot
be marked Available, and a cell with free room cannot be marked Occupied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(rt *deps) error {
				opts, err := rt.svc.CellStatusOptions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return rt.printer.Strings("STATUS", facility.Strings(opts))
			})
		},
	}
	return cmd
}

func (c *cli) eligibleCells() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligible BLOCK",
		Short: "List the cells of a block that can take another inmate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(rt *deps) error {
				cells, err := rt.svc.EligibleCells(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(cells) == 0 {
					rt.printer.Empty("eligible cells")
					return nil
				}
				return rt.printer.Strings("CELL", cells)
			})
		},
	}
	return cmd
}

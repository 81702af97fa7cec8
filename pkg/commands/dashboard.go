package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/derive"
)

func (c *cli) addDashboard(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the facility summary",
		Long: `Show the headline counters (total inmates, active staff, daily
visitors, available cells), the staff breakdown and the weekly activity.`,
		Example: `
warden dashboard
warden dashboard -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				d, err := rt.svc.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				rt.printer.Title("Facility")
				return rt.printer.Summary(d.Summary, d.StaffStatus, d.Weekly, d)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func (c *cli) addBlocks(topLevel *cobra.Command) {
	var fromCells bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Show occupancy per cell block",
		Example: `
warden blocks
warden blocks --from-cells
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				if fromCells {
					if err := rt.svc.Cells.Mount(cmd.Context()); err != nil {
						return err
					}
					return rt.printer.BlockStats(derive.BlockStats(rt.svc.Cells.Items()))
				}
				blocks, err := rt.svc.CellBlocks(cmd.Context())
				if err != nil {
					return err
				}
				return rt.printer.CellBlocks(blocks)
			})
		},
	}

	cmd.Flags().BoolVar(&fromCells, "from-cells", false,
		"Compute the statistics from the cell listing instead of the server aggregate.")

	topLevel.AddCommand(cmd)
}

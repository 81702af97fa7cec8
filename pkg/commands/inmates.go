package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/printers"
	"tableflip.dev/warden/pkg/prompt"
)

func (c *cli) addInmates(topLevel *cobra.Command) {
	k := kindCommands[facility.Inmate]{
		cli:   c,
		noun:  "inmate",
		store: func(s *app.Service) *entitystore.Store[facility.Inmate] { return s.Inmates },
		categories: map[string][]string{
			facility.FilterStatus: facility.FilterValues(facility.AllInmateStatuses()),
			facility.FilterBlock:  nil,
		},
		statuses: facility.Strings(facility.AllInmateStatuses()),
		print:    (*printers.Printer).Inmates,
	}

	cmd := &cobra.Command{
		Use:     "inmates",
		Aliases: []string{"inmate"},
		Short:   "List, admit and release inmates",
		Example: `
warden inmates list --status=Active --block=A
warden inmates add --name="John Smith" --age=34 --block=A --cell=A-101 --charges=Burglary
warden inmates add -i
warden inmates status 7 Released
warden inmates delete 7
`,
	}
	cmd.AddCommand(k.list(), c.admitInmate(), k.remove(), k.status())
	topLevel.AddCommand(cmd)
}

func (c *cli) admitInmate() *cobra.Command {
	interactive := &options.InteractiveOptions{}
	o := &options.InmateOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Admit an inmate into an available cell",
		Long: `Admit an inmate. The cell must belong to the block, be Available and
have room for another occupant. With -i, the block and cell are chosen from
the cells that qualify.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				draft := o.Draft()
				if interactive.Interactive {
					p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
					var err error
					if draft, err = c.promptInmate(cmd, rt, p, draft); err != nil {
						return err
					}
				}
				admitted, err := rt.svc.Admit(cmd.Context(), draft)
				if err != nil {
					return err
				}
				return rt.printer.Inmates([]facility.Inmate{admitted})
			})
		},
	}

	options.InteractiveArgs(cmd, interactive)
	options.AddInmateArgs(cmd, o)
	return cmd
}

// promptInmate fills the fields of draft that were not given as flags.
func (c *cli) promptInmate(cmd *cobra.Command, rt *deps, p *prompt.Prompter, draft facility.Inmate) (facility.Inmate, error) {
	answers, err := p.Form([]prompt.Field{
		{Name: "name", Label: "Full name", Required: true, Skip: draft.Name != ""},
		{Name: "charges", Label: "Charges", Required: true, Skip: draft.Charges != ""},
	})
	if err != nil {
		return draft, err
	}
	if v, ok := answers["name"]; ok {
		draft.Name = v
	}
	if v, ok := answers["charges"]; ok {
		draft.Charges = v
	}
	if draft.Age <= 0 {
		if draft.Age, err = p.Int("Age", ""); err != nil {
			return draft, err
		}
	}

	if draft.Block == "" || draft.CellNumber == "" {
		if err := rt.svc.Cells.Mount(cmd.Context()); err != nil {
			return draft, err
		}
		picker := derive.NewCellPicker(rt.svc.Cells.Items())
		if draft.Block == "" {
			if draft.Block, err = p.Select("Block", picker.Blocks()); err != nil {
				return draft, err
			}
		}
		picker.SetBlock(draft.Block)
		if draft.CellNumber == "" {
			if draft.CellNumber, err = p.Select("Cell", picker.Options()); err != nil {
				return draft, err
			}
		}
	}
	return draft, nil
}

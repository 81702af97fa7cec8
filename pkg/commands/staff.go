package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/printers"
	"tableflip.dev/warden/pkg/prompt"
)

func (c *cli) addStaff(topLevel *cobra.Command) {
	k := kindCommands[facility.Staff]{
		cli:   c,
		noun:  "staff member",
		store: func(s *app.Service) *entitystore.Store[facility.Staff] { return s.Staff },
		categories: map[string][]string{
			facility.FilterStatus:     facility.FilterValues(facility.AllStaffStatuses()),
			facility.FilterShift:      facility.FilterValues(facility.AllShifts()),
			facility.FilterDepartment: nil,
		},
		statuses: facility.Strings(facility.AllStaffStatuses()),
		print:    (*printers.Printer).Staff,
	}

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "List, hire and schedule staff",
		Example: `
warden staff list --shift=Night
warden staff add --name="Sarah Johnson" --position="Correctional Officer" --department=Security --phone=555-0101
warden staff status 3 "On Leave"
`,
	}
	cmd.AddCommand(k.list(), c.hireStaff(), k.remove(), k.status())
	topLevel.AddCommand(cmd)
}

func (c *cli) hireStaff() *cobra.Command {
	interactive := &options.InteractiveOptions{}
	o := &options.StaffOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member",
		Long: `Add a staff member. New staff start On Duty on the Day shift unless
--shift says otherwise; the hire date is today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				if interactive.Interactive {
					p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
					answers, err := p.Form([]prompt.Field{
						{Name: "name", Label: "Full name", Required: true, Skip: o.Name != ""},
						{Name: "position", Label: "Position", Required: true, Skip: o.Position != ""},
						{Name: "department", Label: "Department", Required: true, Skip: o.Department != ""},
						{Name: "shift", Label: "Shift", Options: facility.Strings(facility.AllShifts()), Skip: o.Shift != ""},
						{Name: "phone", Label: "Phone", Required: true, Skip: o.Phone != ""},
					})
					if err != nil {
						return err
					}
					assign(answers, map[string]*string{
						"name": &o.Name, "position": &o.Position, "department": &o.Department,
						"shift": &o.Shift, "phone": &o.Phone,
					})
				}
				draft, err := o.Draft()
				if err != nil {
					return err
				}
				added, err := rt.svc.Staff.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				return rt.printer.Staff([]facility.Staff{added})
			})
		},
	}

	options.InteractiveArgs(cmd, interactive)
	options.AddStaffArgs(cmd, o)
	return cmd
}

// assign copies form answers into the option fields they belong to.
func assign(answers map[string]string, fields map[string]*string) {
	for name, v := range answers {
		if f, ok := fields[name]; ok {
			*f = v
		}
	}
}

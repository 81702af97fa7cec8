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

func (c *cli) addVisitors(topLevel *cobra.Command) {
	k := kindCommands[facility.Visitor]{
		cli:   c,
		noun:  "visit",
		store: func(s *app.Service) *entitystore.Store[facility.Visitor] { return s.Visitors },
		categories: map[string][]string{
			facility.FilterStatus: facility.FilterValues(facility.AllVisitStatuses()),
		},
		statuses: facility.Strings(facility.AllVisitStatuses()),
		print:    (*printers.Printer).Visitors,
	}

	cmd := &cobra.Command{
		Use:     "visitors",
		Aliases: []string{"visits", "visitor"},
		Short:   "Schedule and track visits",
		Example: `
warden visitors list --status=Scheduled
warden visitors add --name="Mary Smith" --relationship=Mother --inmate="John Smith" --date=3/14 --time=10:00 --phone=555-0199 --id-number=DL-4411
warden visitors status 12 Completed
`,
	}
	cmd.AddCommand(k.list(), c.scheduleVisit(), k.remove(), k.status())
	topLevel.AddCommand(cmd)
}

func (c *cli) scheduleVisit() *cobra.Command {
	interactive := &options.InteractiveOptions{}
	o := &options.VisitorOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				if interactive.Interactive {
					p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
					fields := []prompt.Field{
						{Name: "name", Label: "Visitor name", Required: true, Skip: o.Name != ""},
						{Name: "relationship", Label: "Relationship", Required: true, Skip: o.Relationship != ""},
						{Name: "date", Label: "Visit date", Required: true, Skip: o.Date != ""},
						{Name: "time", Label: "Visit time", Required: true, Skip: o.Time != ""},
						{Name: "phone", Label: "Phone", Required: true, Skip: o.Phone != ""},
						{Name: "id", Label: "ID number", Required: true, Skip: o.IDNumber != ""},
					}
					if o.Inmate == "" {
						if err := rt.svc.Inmates.Mount(cmd.Context()); err != nil {
							return err
						}
						names := make([]string, 0, rt.svc.Inmates.Len())
						for _, in := range rt.svc.Inmates.Items() {
							names = append(names, in.Name)
						}
						fields = append(fields, prompt.Field{Name: "inmate", Label: "Inmate visiting", Options: names})
					}
					answers, err := p.Form(fields)
					if err != nil {
						return err
					}
					assign(answers, map[string]*string{
						"name": &o.Name, "relationship": &o.Relationship, "date": &o.Date,
						"time": &o.Time, "phone": &o.Phone, "id": &o.IDNumber, "inmate": &o.Inmate,
					})
				}
				draft, err := o.Draft()
				if err != nil {
					return err
				}
				added, err := rt.svc.Visitors.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				return rt.printer.Visitors([]facility.Visitor{added})
			})
		},
	}

	options.InteractiveArgs(cmd, interactive)
	options.AddVisitorArgs(cmd, o)
	return cmd
}

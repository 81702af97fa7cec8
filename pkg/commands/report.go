package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/report"
)

func (c *cli) addReport(topLevel *cobra.Command) {
	o := &options.ReportOptions{}

	types := make([]string, 0, len(report.Types()))
	for _, t := range report.Types() {
		types = append(types, fmt.Sprintf("  %-16s %s", t, t.Description()))
	}

	cmd := &cobra.Command{
		Use:   "report TYPE",
		Short: "Generate an Excel report",
		Long: `Generate an Excel workbook from the current records. Every report has a
Summary sheet with the headline counters and per-block occupancy; TYPE picks
the detail sheets:

` + strings.Join(types, "\n"),
		Example: `
warden report facility
warden report inmate-summary --from=2026-1-1 --to=2026-3-31 --out=q1.xlsx
`,
		ValidArgs: reportTypes(),
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(rt *deps) error {
				t, err := report.ParseType(args[0])
				if err != nil {
					return err
				}
				rng, err := o.Range()
				if err != nil {
					return err
				}
				path := o.Out
				if path == "" {
					path = fmt.Sprintf("%s-%s.xlsx", t, time.Now().Format("2006-01-02"))
				}
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := rt.svc.Report(cmd.Context(), f, t, rng); err != nil {
					_ = f.Close()
					_ = os.Remove(path)
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				return rt.printer.Report(t.Title(), path, rng.String())
			})
		},
	}

	options.AddReportArgs(cmd, o)
	topLevel.AddCommand(cmd)
}

func reportTypes() []string {
	out := make([]string, 0, len(report.Types()))
	for _, t := range report.Types() {
		out = append(out, string(t))
	}
	return out
}

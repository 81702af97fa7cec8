package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/report"
)

// ReportOptions
type ReportOptions struct {
	Out  string
	From string
	To   string
}

func AddReportArgs(cmd *cobra.Command, o *ReportOptions) {
	cmd.Flags().StringVar(&o.Out, "out", "",
		`Write the workbook to this file, default "<type>-<date>.xlsx".`)
	cmd.Flags().StringVar(&o.From, "from", "",
		`Only include records dated on or after this day, example: --from="2026-1-1".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Only include records dated on or before this day, example: --to="2026-3-31".`)
}

// Range parses --from and --to.
func (o *ReportOptions) Range() (report.Range, error) {
	from, err := ParseDate(o.From)
	if err != nil {
		return report.Range{}, err
	}
	to, err := ParseDate(o.To)
	if err != nil {
		return report.Range{}, err
	}
	return report.ParseRange(from, to)
}

package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/printers"
)

// OutputOptions selects how results and errors are printed.
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().StringVarP(&o.Output, "output", "o", "table",
		"Output format. One of 'table', 'json' or 'yaml'.")
}

// Format resolves the printer format; --json wins over --output.
func (o *OutputOptions) Format() (printers.Format, error) {
	if o.JSON {
		return printers.JSON, nil
	}
	return printers.ParseFormat(o.Output)
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

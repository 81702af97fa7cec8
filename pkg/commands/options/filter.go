package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/filter"
)

// FilterOptions narrow a listing. Values holds one entry per category flag
// registered with AddFilterArgs.
type FilterOptions struct {
	Search string
	Values map[string]*string
}

// AddFilterArgs registers --search and one flag per category name, each
// documented with its allowed values.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions, categories map[string][]string) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Case-insensitive text search.")
	o.Values = make(map[string]*string, len(categories))
	for name, allowed := range categories {
		v := new(string)
		o.Values[name] = v
		usage := fmt.Sprintf("Filter by %s.", name)
		if len(allowed) > 0 {
			usage = fmt.Sprintf("Filter by %s. One of %s.", name, strings.Join(quoted(allowed), ", "))
		}
		cmd.Flags().StringVar(v, name, "", usage)
	}
}

// State builds the filter state from the flags.
func (o *FilterOptions) State() filter.State {
	st := filter.State{}.WithSearch(o.Search)
	for name, v := range o.Values {
		if v != nil && *v != "" {
			st = st.With(name, *v)
		}
	}
	return st
}

func quoted(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = "'" + v + "'"
	}
	return out
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/printers"
)

// kindCommands builds the list, delete and status subcommands shared by the
// four collections.
type kindCommands[T any] struct {
	cli *cli
	// noun is the singular used in help text.
	noun       string
	store      func(*app.Service) *entitystore.Store[T]
	categories map[string][]string
	statuses   []string
	print      func(*printers.Printer, []T) error
}

func (k kindCommands[T]) list() *cobra.Command {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   fmt.Sprintf("List %ss", k.noun),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return k.cli.run(cmd, func(rt *deps) error {
				s := k.store(rt.svc)
				st := fo.State()
				if err := s.FilterSpec().Validate(st); err != nil {
					return err
				}
				if err := s.Mount(cmd.Context()); err != nil {
					return err
				}
				s.SetSearch(st.Search)
				for _, name := range st.Active() {
					s.SetFilter(name, st.Value(name))
				}
				items := s.Filtered()
				if len(items) == 0 {
					rt.printer.Empty(s.Name())
					if rt.printer.Format == printers.Table {
						return nil
					}
				}
				return k.print(rt.printer, items)
			})
		},
	}

	options.AddFilterArgs(cmd, fo, k.categories)
	return cmd
}

func (k kindCommands[T]) remove() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm", "remove"},
		Short:   fmt.Sprintf("Delete a %s", k.noun),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires one %s id", k.noun)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return k.cli.run(cmd, func(rt *deps) error {
				s := k.store(rt.svc)
				if err := s.Mount(cmd.Context()); err != nil {
					return err
				}
				return s.Remove(cmd.Context(), args[0])
			})
		},
	}
	return cmd
}

func (k kindCommands[T]) status() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: fmt.Sprintf("Change the status of a %s", k.noun),
		Long:  fmt.Sprintf("Change the status of a %s. STATUS is one of %s.", k.noun, strings.Join(k.statuses, ", ")),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("requires a %s id and a status", k.noun)
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return k.statuses, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return k.cli.run(cmd, func(rt *deps) error {
				s := k.store(rt.svc)
				if err := s.Mount(cmd.Context()); err != nil {
					return err
				}
				// Multi-word statuses may be passed unquoted: status ID On Leave.
				updated, err := s.SetStatus(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if errors.Is(err, entitystore.ErrNotFound) {
					return fmt.Errorf("no %s with id %s", k.noun, args[0])
				}
				if err != nil {
					return err
				}
				return k.print(rt.printer, []T{updated})
			})
		},
	}
	return cmd
}

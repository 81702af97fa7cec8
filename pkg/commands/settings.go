package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/store"
)

func (c *cli) addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change the facility settings",
		Long: `Facility settings are kept on this machine. Keys:

  ` + strings.Join(store.SettingKeys(), "\n  "),
		Example: `
warden settings get
warden settings get facilityName
warden settings set maxCapacity 1800 smsAlerts true
warden settings reset
`,
	}

	cmd.AddCommand(c.getSettings(), c.setSettings(), c.resetSettings())
	topLevel.AddCommand(cmd)
}

func (c *cli) getSettings() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "get [KEY]",
		Short:     "Show every setting, or one",
		ValidArgs: store.SettingKeys(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(rt *deps) error {
				s, err := rt.svc.Settings()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					return rt.printer.Settings(s)
				}
				v, err := s.Get(args[0])
				if err != nil {
					return err
				}
				return rt.printer.Strings(args[0], []string{v})
			})
		},
	}
	return cmd
}

func (c *cli) setSettings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE [KEY VALUE...]",
		Short: "Change one or more settings",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected KEY VALUE pairs")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args)%2 == 0 {
				return store.SettingKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(rt *deps) error {
				s, err := rt.svc.Settings()
				if err != nil {
					return err
				}
				for i := 0; i < len(args); i += 2 {
					if err := s.Set(args[i], args[i+1]); err != nil {
						return err
					}
				}
				if err := rt.svc.SaveSettings(s); err != nil {
					return err
				}
				return rt.printer.Settings(s)
			})
		},
	}
	return cmd
}

func (c *cli) resetSettings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				s, err := rt.svc.ResetSettings()
				if err != nil {
					return err
				}
				return rt.printer.Settings(s)
			})
		},
	}
	return cmd
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/prompt"
	"tableflip.dev/warden/pkg/store"
)

func (c *cli) addLogin(topLevel *cobra.Command) {
	var user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an operator",
		Long: `Sign in as an operator. Any non-empty user name and password are
accepted; the user name is remembered on this machine until logout.`,
		Example: `
warden login --user officer
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				var err error
				if user == "" {
					if user, err = p.Text("Username", "", true); err != nil {
						return err
					}
				}
				if password == "" {
					if password, err = p.Password("Password"); err != nil {
						return err
					}
				}
				s, err := rt.svc.Login(user, password)
				if err != nil {
					return err
				}
				return rt.printer.Session(s)
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "User name.")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password; prompted for when omitted.")

	topLevel.AddCommand(cmd)
}

func (c *cli) addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				return rt.svc.Logout()
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func (c *cli) addWhoAmI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(rt *deps) error {
				s, err := rt.svc.WhoAmI()
				if errors.Is(err, store.ErrNoSession) {
					return fmt.Errorf("not logged in, run 'warden login'")
				}
				if err != nil {
					return err
				}
				return rt.printer.Session(s)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCommand(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.client()
			user, err := c.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := a.saveToken(c.Token()); err != nil {
				return err
			}
			a.success("Welcome, %s! Your notes start in the default notebook.", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	return cmd
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.client()
			user, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.saveToken(c.Token()); err != nil {
				return err
			}
			a.success("Logged in as %s <%s>", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			user, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.success("%s <%s>", user.Name, user.Email)
			return nil
		},
	}
}

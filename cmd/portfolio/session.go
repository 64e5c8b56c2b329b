package main

import (
	"fmt"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/guard"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the command line client's session",
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in, prompting for any credentials not given as flags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, err := promptIfEmpty(loginEmail, "Email", false)
		if err != nil {
			return err
		}
		password, err := promptIfEmpty(loginPassword, "Password", true)
		if err != nil {
			return err
		}

		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		role, err := c.auth.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", auth.Message(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s). Landing page: %s\n", email, role, guard.LoginDestination(role, ""))
		return nil
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		c.auth.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		if !c.auth.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in: role=%s admin=%t\n", c.auth.Role(), c.auth.IsAdmin())
		return nil
	},
}

func init() {
	sessionLoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	sessionLoginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	sessionCmd.AddCommand(sessionLoginCmd, sessionLogoutCmd, sessionStatusCmd)
}

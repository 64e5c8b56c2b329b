package main

import (
	"fmt"
	"io"

	"github.com/jrsteele09/portfolio-lab/theme"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the command line client's theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current mode and its tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		printTheme(cmd.OutOrStdout(), c.theme)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		c.theme.Toggle(cmd.Context())
		printTheme(cmd.OutOrStdout(), c.theme)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Set the mode explicitly",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()

		if !c.theme.SetMode(cmd.Context(), args[0]) {
			return fmt.Errorf("unknown mode %q", args[0])
		}
		printTheme(cmd.OutOrStdout(), c.theme)
		return nil
	},
}

func printTheme(w io.Writer, s *theme.Service) {
	fmt.Fprintf(w, "mode: %s\n", s.Mode())
	for _, v := range s.Tokens().Variables() {
		fmt.Fprintf(w, "  %s: %s\n", v.Name, v.Value)
	}
}

func init() {
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd, themeSetCmd)
}

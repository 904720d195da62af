package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/ipc"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect and switch launcher themes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ListThemes()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Themes) == 0 {
					fmt.Fprintln(stdout, "No themes available")
					return nil
				}
				colorize := shouldColorize(stdout)
				rows := make([][]string, 0, len(resp.Themes))
				for _, theme := range resp.Themes {
					active := ""
					if theme.Active {
						active = "*"
						if colorize {
							active = ansiGreen + active + ansiReset
						}
					}
					rows = append(rows, []string{theme.Name, theme.Source, active})
				}
				table := renderTable([]string{"Theme", "Source", "Active"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft})
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Switch the active theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SetTheme(name)
				if err != nil {
					return err
				}
				if err := commandError(resp.CommandResult); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", name)
				return nil
			})
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Print the active theme name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CurrentTheme()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Name)
				return nil
			})
		},
	}

	themeCmd.AddCommand(listCmd, setCmd, currentCmd)
	return themeCmd
}

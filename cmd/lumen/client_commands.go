package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/ipc"
)

func newClientCommands(ctx *commandContext) []*cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the launcher window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Show()
				if err != nil {
					return err
				}
				return commandError(resp.CommandResult)
			})
		},
	}

	hideCmd := &cobra.Command{
		Use:   "hide",
		Short: "Hide the launcher window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Hide()
				if err != nil {
					return err
				}
				return commandError(resp.CommandResult)
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle launcher visibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Toggle()
				if err != nil {
					return err
				}
				return commandError(resp.CommandResult)
			})
		},
	}

	quitCmd := &cobra.Command{
		Use:   "quit",
		Short: "Stop the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Quit()
				if err != nil {
					return err
				}
				if err := commandError(resp.CommandResult); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopped")
				return nil
			})
		},
	}

	reloadCmd := &cobra.Command{
		Use:   "reload",
		Short: "Restart the daemon in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Reload()
				if err != nil {
					return err
				}
				if err := commandError(resp.CommandResult); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon reloading")
				return nil
			})
		},
	}

	return []*cobra.Command{showCmd, hideCmd, toggleCmd, quitCmd, reloadCmd}
}

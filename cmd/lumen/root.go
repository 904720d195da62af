package main

import (
	"errors"

	"github.com/spf13/cobra"

	"lumen/internal/daemonrun"
	"lumen/internal/ipc"
)

func newRootCommand() *cobra.Command {
	var socketFlag string
	var configFlag string

	ctx := newCommandContext(&socketFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "lumen",
		Short:         "Lumen application launcher",
		Long:          "Lumen is a keyboard-driven application launcher. Run it without arguments to start the daemon; use the subcommands to control a running instance.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := daemonrun.Run(cmd.Context(), daemonrun.Options{
				ConfigPath: configFlag,
				Endpoint:   ctx.endpoint(),
			})
			if errors.Is(err, ipc.ErrAlreadyRunning) {
				// Idempotent start: another instance answers, so this
				// invocation has nothing left to do.
				return nil
			}
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Path to the daemon control socket")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	for _, cmd := range newClientCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newThemeCommand(ctx))
	rootCmd.AddCommand(newAppsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

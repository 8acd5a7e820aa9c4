package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mobilectl/core/cmd/api/commands"
)

// @title mobilectl API
// @version 1.0.0
// @description Phonebook management and device control
// @host localhost:5000
// @BasePath /

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, commands.ErrActionFailed) {
			log.Printf("Command execution failed: %v", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mobilectl",
		Short:         "Phonebook and device control",
		Long:          `mobilectl manages a local phonebook and drives calls, SMS, volume, brightness and theme through the host platform. It runs as an HTTP server, a one-shot CLI or an automation host plugin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewExecCommand())
	rootCmd.AddCommand(commands.NewPluginCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// Package cli implements the alzent command line: the website server, the
// standalone send-email endpoint and the translation audit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/alzentdigital/website/pkg/config"
)

// NewRootCmd returns the alzent command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "alzent",
		Short: "Alzent Digital website server",
		Long: `alzent serves the Alzent Digital website and its form API.

Configuration is read from the environment. A .env file in the working
directory is loaded automatically; --env-file loads additional files that
override variables already set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")

	root.AddCommand(
		newServeCmd(),
		newSendEmailCmd(),
		newValidateTranslationsCmd(),
	)
	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

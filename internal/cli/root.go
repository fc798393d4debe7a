// Package cli holds the logisticshub commands: the API server, schema
// migrations and user bootstrap.
package cli

import (
	"github.com/spf13/cobra"

	intconfig "logisticshub/internal/config"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "logisticshub",
		Short:         "Back office for a trucking company",
		Long:          `logisticshub serves the master data, trip and expense API, imports client spreadsheets and computes the monthly profit and loss dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), intconfig.LoadEnv())
		},
	}
	root.AddCommand(serveCommand(), migrateCommand(), userCommand())
	return root
}

// Execute runs the command line; serve is the default.
func Execute() error {
	return NewRootCommand().Execute()
}

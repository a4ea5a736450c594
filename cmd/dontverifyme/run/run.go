package run

import (
	"dontverifyme/cmd/dontverifyme/run/migrations"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(migrations.Command)
}

var Command = &cobra.Command{
	Use:     "run",
	Aliases: []string{"r"},
	Short:   "Runs scripts related to the service's operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

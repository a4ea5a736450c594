package get

import (
	"dontverifyme/cmd/dontverifyme/get/mfas"
	"dontverifyme/cmd/dontverifyme/get/platforms"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(mfas.Command)
	Command.AddCommand(platforms.Command)
}

var Command = &cobra.Command{
	Use:     "get",
	Aliases: []string{"g"},
	Short:   "Retrieves resources from dontverify.me",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

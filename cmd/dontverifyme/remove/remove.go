package remove

import (
	"dontverifyme/cmd/dontverifyme/remove/mfa"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(mfa.Command)
}

var Command = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"delete", "del", "rm"},
	Short:   "Removes resources from your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

package create

import (
	"dontverifyme/cmd/dontverifyme/create/mfa"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(mfa.Command)
}

var Command = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add", "c"},
	Short:   "Creates resources on your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

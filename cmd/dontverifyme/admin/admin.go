package admin

import (
	"dontverifyme/cmd/dontverifyme/admin/seed"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(seed.Command)
}

var Command = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations on a dontverify.me instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

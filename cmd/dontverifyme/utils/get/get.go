package get

import (
	"dontverifyme/cmd/dontverifyme/utils/get/totp"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(totp.Command)
}

var Command = &cobra.Command{
	Use:   "get",
	Short: "Generates or retrieves values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

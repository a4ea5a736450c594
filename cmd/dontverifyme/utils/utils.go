package utils

import (
	"dontverifyme/cmd/dontverifyme/utils/get"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(get.Command)
}

var Command = &cobra.Command{
	Use:   "utils",
	Short: "Utilities that support development and operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

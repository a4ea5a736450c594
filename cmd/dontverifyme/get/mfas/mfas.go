package mfas

import (
	"fmt"

	"dontverifyme/internal/cli"
	"dontverifyme/pkg/dvm"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "controller-url",
		DefaultValue: "http://localhost:54321",
		Usage:        "defines the url where the api server is accessible at",
		Type:         cli.FlagTypeString,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:     "mfas",
	Aliases: []string{"mfa"},
	Short:   "Lists the authenticator factors enrolled on your account",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		controllerUrl := viper.GetString("controller-url")
		sessionToken, err := cli.RequireAuth(controllerUrl, "dontverifyme/get/mfas")
		if err != nil {
			return err
		}

		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: controllerUrl,
			BearerAuth: &dvm.NewClientBearerAuthOpts{
				Token: sessionToken,
			},
			Id: "dontverifyme/get/mfas",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}
		listOutput, err := client.ListMfasV1()
		if err != nil {
			return fmt.Errorf("failed to list factors: %s", err)
		}
		if len(listOutput.Data) == 0 {
			fmt.Println("You have no authenticator factors enrolled")
			return nil
		}

		table := cli.NewTable(cli.NewTableOpts{
			Headers: []string{"id", "type", "name", "verified", "created at"},
			Rows: func(t *cli.Table) error {
				for _, factor := range listOutput.Data {
					name := "-"
					if factor.Name != nil {
						name = *factor.Name
					}
					createdAt := "-"
					if factor.CreatedAt != nil {
						createdAt = factor.CreatedAt.Local().Format("2006-01-02 15:04:05")
					}
					if err := t.NewRow(factor.Id, factor.Type, name, factor.IsVerified, createdAt); err != nil {
						return err
					}
				}
				return nil
			},
		})
		fmt.Println(table.Render().GetString())
		return nil
	},
}

package platforms

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
	Use:     "platforms",
	Aliases: []string{"platform", "p"},
	Short:   "Lists the platforms with privacy guides available",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: viper.GetString("controller-url"),
			Id:            "dontverifyme/get/platforms",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}
		listOutput, err := client.ListPlatformsV1()
		if err != nil {
			return fmt.Errorf("failed to list platforms: %s", err)
		}
		if len(listOutput.Data) == 0 {
			fmt.Println("No platforms have been published yet")
			return nil
		}

		table := cli.NewTable(cli.NewTableOpts{
			Headers: []string{"slug", "name", "url", "description"},
			Rows: func(t *cli.Table) error {
				for _, platform := range listOutput.Data {
					platformUrl := "-"
					if platform.Url != nil {
						platformUrl = *platform.Url
					}
					description := "-"
					if platform.Description != nil {
						description = *platform.Description
					}
					if err := t.NewRow(platform.Slug, platform.Name, platformUrl, description); err != nil {
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

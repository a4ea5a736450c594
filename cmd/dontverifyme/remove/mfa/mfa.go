package mfa

import (
	"errors"
	"fmt"

	"dontverifyme/internal/cli"
	"dontverifyme/pkg/dvm"
	"dontverifyme/pkg/dvm/mfaflow"

	tea "github.com/charmbracelet/bubbletea"
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
	{
		Name:         "unverified",
		DefaultValue: false,
		Usage:        "removes all unverified authenticators instead of a single one",
		Type:         cli.FlagTypeBool,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:   "mfa [factor-id]",
	Short: "Removes an authenticator from your account (you must be logged-in before running this)",
	Args:  cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		controllerUrl := viper.GetString("controller-url")
		sessionToken, err := cli.RequireAuth(controllerUrl, "dontverifyme/remove/mfa")
		if err != nil {
			return err
		}

		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: controllerUrl,
			BearerAuth: &dvm.NewClientBearerAuthOpts{
				Token: sessionToken,
			},
			Id: "dontverifyme/remove/mfa",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}

		panel := mfaflow.NewPanel(mfaflow.PanelOpts{
			Provider: mfaflow.NewClientProvider(client),
		})

		if viper.GetBool("unverified") {
			removed, err := panel.RemoveUnverified()
			if err != nil {
				fmt.Println("⚠️ Some authenticators couldn't be removed, run `dontverifyme get mfas` to see what's left")
			}
			fmt.Printf("✅ Removed %v unverified authenticator(s)\n", removed)
			return nil
		}

		if len(args) == 0 {
			fmt.Println("💡 Run `dontverifyme get mfas` to see your authenticators and their ids")
			return errors.New("a factor id is required")
		}
		factorId := args[0]

		fmt.Printf("💬 You're about to remove authenticator[%s], this cannot be undone\n", factorId)
		fmt.Println("")
		model := cli.CreatePrompt(cli.PromptOpts{
			Buttons: []cli.PromptButton{
				{
					Label: "Remove it",
					Type:  cli.PromptButtonSubmit,
				},
				{
					Label: "Cancel / Ctrl + C",
					Type:  cli.PromptButtonCancel,
				},
			},
		})
		prompt := tea.NewProgram(model)
		if _, err := prompt.Run(); err != nil {
			return fmt.Errorf("failed to get user input: %s", err)
		}
		if model.GetExitCode() == cli.PromptCancelled {
			return errors.New("user cancelled")
		}

		if err := panel.Remove(factorId); err != nil {
			if errors.Is(err, dvm.ErrorMfaRequired) {
				fmt.Println("⚠️ Removing an authenticator requires a multi-factor session, log in again and complete the challenge first")
				return errors.New("multi-factor session required")
			}
			if errors.Is(err, dvm.ErrorNotFound) {
				fmt.Println("⚠️ We couldn't find that authenticator on your account")
				return errors.New("authenticator not found")
			}
			return fmt.Errorf("failed to remove authenticator: %s", err)
		}
		fmt.Printf("✅ Authenticator[%s] has been removed\n", factorId)
		return nil
	},
}

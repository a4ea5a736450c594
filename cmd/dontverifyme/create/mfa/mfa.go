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
		Name:         "name",
		DefaultValue: "",
		Usage:        "a label for the new authenticator (eg. 'personal phone')",
		Type:         cli.FlagTypeString,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:   "mfa",
	Short: "Enrolls an authenticator app on your account (you must be logged-in before running this)",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		controllerUrl := viper.GetString("controller-url")
		sessionToken, err := cli.RequireAuth(controllerUrl, "dontverifyme/create/mfa")
		if err != nil {
			return err
		}

		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: controllerUrl,
			BearerAuth: &dvm.NewClientBearerAuthOpts{
				Token: sessionToken,
			},
			Id: "dontverifyme/create/mfa",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}

		var name *string
		if value := viper.GetString("name"); value != "" {
			name = &value
		}

		fmt.Println("⏳ Checking your current authenticators...")

		panel := mfaflow.NewPanel(mfaflow.PanelOpts{
			Provider: mfaflow.NewClientProvider(client),
			OnCleanupError: func(err error) {
				fmt.Printf("⚠️ Failed to remove the unfinished authenticator, it will be cleaned up on your next enrollment: %s\n", err)
			},
		})
		flow, err := panel.BeginEnrollment(name)
		if err != nil {
			if errors.Is(err, mfaflow.ErrorFactorLimitReached) {
				fmt.Printf("⚠️ You already have %v verified authenticators, remove one before adding another\n", mfaflow.MaxVerifiedFactors)
				return errors.New("factor limit reached")
			}
			return fmt.Errorf("failed to start enrollment: %s", err)
		}
		defer flow.Close()

		enrollment, err := flow.Start()
		if err != nil {
			return fmt.Errorf("failed to start enrollment: %s", err)
		}

		fmt.Printf(
			"🤳 Use your authenticator app to scan the following QR code: %s"+
				"⌨️  Alternatively enter the following TOTP seed into your authenticator app:\n\n\t%s\n\n",
			enrollment.QrCode,
			enrollment.Secret,
		)

		for !flow.IsVerified() {
			fmt.Println("💬 Enter the 6-digit code your authenticator app shows:")
			fmt.Println("")
			model := cli.CreatePrompt(cli.PromptOpts{
				Buttons: []cli.PromptButton{
					{
						Label: "Verify",
						Type:  cli.PromptButtonSubmit,
					},
					{
						Label: "Cancel / Ctrl + C",
						Type:  cli.PromptButtonCancel,
					},
				},
				Inputs: []cli.PromptInput{
					{
						Id:          "totp",
						Placeholder: "eg. 123456",
						Type:        cli.PromptCode,
					},
				},
			})
			prompt := tea.NewProgram(model)
			if _, err := prompt.Run(); err != nil {
				return fmt.Errorf("failed to get user input: %s", err)
			}
			if model.GetExitCode() == cli.PromptCancelled {
				if err := flow.Cancel(); err != nil {
					fmt.Println("⚠️ We couldn't remove the pending authenticator, it will not count towards your verified factors")
				}
				return errors.New("user cancelled")
			}
			if _, err := flow.Input(model.GetValue("totp")); err != nil {
				fmt.Println("⚠️ That code didn't match, grab a fresh one from your app and try again")
			}
		}

		fmt.Printf("✅ Authenticator successfully enrolled (factor ID: %s)\n", enrollment.FactorId)
		return nil
	},
}

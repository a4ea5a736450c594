package login

import (
	"errors"
	"fmt"
	"os"

	"dontverifyme/internal/cli"
	"dontverifyme/internal/validate"
	"dontverifyme/pkg/dvm"
	"dontverifyme/pkg/dvm/mfaflow"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tea "github.com/charmbracelet/bubbletea"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "controller-url",
		DefaultValue: "http://localhost:54321",
		Usage:        "defines the url where the api server is accessible at",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "email",
		DefaultValue: "",
		Usage:        "the email address of your account",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "password",
		DefaultValue: "",
		Usage:        "the password for your account to be used with your email address to authenticate",
		Type:         cli.FlagTypeString,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:   "login",
	Short: "Login to dontverify.me",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, err := dvm.GetSessionToken()
		if err == nil {
			return fmt.Errorf("looks like you're already logged in, run `dontverifyme logout` first before running this command")
		}

		inputEmail := viper.GetString("email")
		inputPassword := viper.GetString("password")
		if inputPassword != "" {
			fmt.Println(
				"⚠️ !!! WARNING !!! ⚠️\n" +
					"Using a password directly on the command line isn't generally recommended\n" +
					"since anyone can see it using the `history` command. Run `history -c` to\n" +
					"remove this from this shell if this is a shared shell")
		}

		if inputEmail == "" || inputPassword == "" {
			fmt.Printf("To get started, we'll need a couple of details from you:\n\n")
		}

		model := cli.CreatePrompt(cli.PromptOpts{
			Buttons: []cli.PromptButton{
				{
					Label: "Login",
					Type:  cli.PromptButtonSubmit,
				},
				{
					Label: "Cancel / Ctrl + C",
					Type:  cli.PromptButtonCancel,
				},
			},
			Inputs: []cli.PromptInput{
				{
					Id:          "email",
					Placeholder: "Your email address",
					Type:        cli.PromptString,
					Value:       inputEmail,
				},
				{
					Id:          "password",
					Placeholder: "Your password",
					Type:        cli.PromptPassword,
					Value:       inputPassword,
				},
			},
		})
		prompt := tea.NewProgram(model)
		if _, err := prompt.Run(); err != nil {
			return fmt.Errorf("failed to get user input: %s", err)
		}
		if model.GetExitCode() == cli.PromptCancelled {
			return errors.New("See you soon maybe?")
		}

		email := model.GetValue("email")
		if err := validate.Email(email); err != nil {
			fmt.Printf("⚠️  The provided email (%s) was not valid\n", email)
			return fmt.Errorf("email invalid")
		}
		password := model.GetValue("password")

		controllerUrl := viper.GetString("controller-url")
		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: controllerUrl,
			Id:            "dontverifyme/login",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}
		hostname, _ := os.Hostname()

		createSessionOutput, err := client.CreateSessionV1(dvm.CreateSessionV1Input{
			Email:    email,
			Password: password,
			Hostname: hostname,
		})
		if err != nil {
			if errors.Is(err, dvm.ErrorEmailNotVerified) {
				fmt.Println("⚠️  Verify your email first using the link we sent you")
				return fmt.Errorf("email has not been verified")
			} else if errors.Is(err, dvm.ErrorInvalidCredentials) {
				fmt.Println("⚠️  The provided credentials doesn't seem correct, try again")
				return fmt.Errorf("credentials validation failed")
			}
			return fmt.Errorf("failed to create session for unexpected reasons: %s", err)
		}

		sessionFilePath, err := dvm.SaveSessionToken(createSessionOutput.Data.SessionToken)
		if err != nil {
			return fmt.Errorf("failed to save session token: %s", err)
		}

		if err := runStepUpIfNeeded(controllerUrl, createSessionOutput.Data.SessionToken); err != nil {
			return err
		}

		fmt.Printf("Welcome back!\nSession ID: %s\nToken stored at: %s\n", createSessionOutput.Data.SessionId, sessionFilePath)
		return nil
	},
}

// runStepUpIfNeeded checks whether the freshly minted session still
// needs to pass a multi-factor challenge and walks the user through
// it when it does.
func runStepUpIfNeeded(controllerUrl string, sessionToken string) error {
	client, err := dvm.NewClient(dvm.NewClientOpts{
		ControllerUrl: controllerUrl,
		BearerAuth: &dvm.NewClientBearerAuthOpts{
			Token: sessionToken,
		},
		Id: "dontverifyme/login",
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %s", err)
	}
	aalOutput, err := client.GetAalV1()
	if err != nil {
		return fmt.Errorf("failed to retrieve the session's authentication level: %s", err)
	}
	if aalOutput.Data.NextLevel != mfaflow.AalMultiFactor ||
		aalOutput.Data.CurrentLevel == mfaflow.AalMultiFactor {
		return nil
	}

	fmt.Println("🔐 Your account has two-factor authentication enabled")
	flow := mfaflow.NewChallengeFlow(mfaflow.ChallengeFlowOpts{
		Provider: mfaflow.NewClientProvider(client),
	})
	if _, err := flow.Start(); err != nil {
		return fmt.Errorf("failed to start the challenge: %s", err)
	}
	for !flow.IsPassed() {
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
					Id:          "code",
					Placeholder: "The 6-digit code from your authenticator app",
					Type:        cli.PromptCode,
				},
			},
		})
		prompt := tea.NewProgram(model)
		if _, err := prompt.Run(); err != nil {
			return fmt.Errorf("failed to get user input: %s", err)
		}
		if model.GetExitCode() == cli.PromptCancelled {
			return errors.New("the session remains at single-factor level, protected areas will be unavailable")
		}
		if _, err := flow.Submit(model.GetValue("code")); err != nil {
			fmt.Println("⚠️  That code didn't work, try again with a fresh one")
			continue
		}
	}
	fmt.Println("✅ Two-factor challenge passed")
	return nil
}

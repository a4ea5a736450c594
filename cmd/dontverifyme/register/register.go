package register

import (
	"errors"
	"fmt"

	"dontverifyme/internal/cli"
	"dontverifyme/internal/validate"
	"dontverifyme/pkg/dvm"

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
		Usage:        "the email address you are signing up with",
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
	Use:   "register",
	Short: "Register for a dontverify.me account",
	Long:  "Register for an account on a dontverify.me instance. If you are using your own instance, set the value of the --controller-url flag to your server's address (this address needs to be reachable from your host machine)",
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
					Label: "Register",
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
		if err := validate.Password(password); err != nil {
			fmt.Printf("⚠️  The provided password was too weak: %s\n", err)
			return fmt.Errorf("password invalid")
		}

		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: viper.GetString("controller-url"),
			Id:            "dontverifyme/register",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}
		createUserOutput, err := client.CreateUserV1(dvm.CreateUserV1Input{
			Email:    email,
			Password: password,
		})
		if err != nil {
			if errors.Is(err, dvm.ErrorEmailExists) {
				fmt.Println("⚠️  That email address is already registered, try logging in instead")
				return fmt.Errorf("email already registered")
			}
			return fmt.Errorf("failed to create user: %s", err)
		}

		fmt.Printf("🎉 Welcome aboard!\nWe've sent a verification link to %s, click it before logging in.\n", createUserOutput.Data.Email)
		return nil
	},
}

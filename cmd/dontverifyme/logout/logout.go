package logout

import (
	"fmt"
	"net/http"

	"dontverifyme/internal/cli"
	"dontverifyme/pkg/dvm"

	"github.com/sirupsen/logrus"
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
	Use:   "logout",
	Short: "Logs out of dontverify.me from your terminal",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionToken, sessionFilePath, err := dvm.GetSessionToken()
		if err != nil {
			return fmt.Errorf("failed to get a session token: %s", err)
		}

		controllerUrl := viper.GetString("controller-url")
		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: controllerUrl,
			BearerAuth: &dvm.NewClientBearerAuthOpts{
				Token: sessionToken,
			},
			Id: "dontverifyme/logout",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}
		deleteSessionOutput, err := client.DeleteSessionV1()
		if err != nil {
			if deleteSessionOutput != nil && deleteSessionOutput.StatusCode == http.StatusUnauthorized {
				logrus.Infof("existing session was invalid, please login again")
			} else {
				logrus.Warnf("failed to end the session remotely: %s", err)
			}
		} else if deleteSessionOutput.Data.IsSuccessful {
			logrus.Debugf("session[%s] has been ended", deleteSessionOutput.Data.SessionId)
		}

		if err := dvm.DeleteSessionToken(); err != nil {
			return fmt.Errorf("failed to remove the session token at path[%s]: %s", sessionFilePath, err)
		}
		fmt.Println("You've been logged out, see you again soon!")
		return nil
	},
}

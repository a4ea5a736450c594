package dontverifyme

import (
	"fmt"
	"strings"

	"dontverifyme/cmd/dontverifyme/admin"
	"dontverifyme/cmd/dontverifyme/create"
	"dontverifyme/cmd/dontverifyme/get"
	"dontverifyme/cmd/dontverifyme/login"
	"dontverifyme/cmd/dontverifyme/logout"
	"dontverifyme/cmd/dontverifyme/register"
	"dontverifyme/cmd/dontverifyme/remove"
	"dontverifyme/cmd/dontverifyme/run"
	"dontverifyme/cmd/dontverifyme/start"
	"dontverifyme/cmd/dontverifyme/utils"
	"dontverifyme/internal/cli"
	"dontverifyme/internal/common"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var availableOutputs = []string{
	"text",
	"json",
}

var availableLogLevels = []string{
	string(common.LogLevelTrace),
	string(common.LogLevelDebug),
	string(common.LogLevelInfo),
	string(common.LogLevelWarn),
	string(common.LogLevelError),
}

var persistentFlags cli.Flags = cli.Flags{
	{
		Name:         "log-level",
		Short:        'l',
		DefaultValue: "info",
		Usage:        fmt.Sprintf("Sets the log level (one of [%s])", strings.Join(availableLogLevels, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "output",
		Short:        'o',
		DefaultValue: "text",
		Usage:        fmt.Sprintf("Sets the output format where applicable (one of [%s])", strings.Join(availableOutputs, ", ")),
		Type:         cli.FlagTypeString,
	},
}

func init() {
	Command.AddCommand(admin.Command)
	Command.AddCommand(create.Command)
	Command.AddCommand(get.Command)
	Command.AddCommand(login.Command)
	Command.AddCommand(logout.Command)
	Command.AddCommand(register.Command)
	Command.AddCommand(remove.Command)
	Command.AddCommand(run.Command)
	Command.AddCommand(start.Command)
	Command.AddCommand(utils.Command)
	Command.SilenceErrors = true
	Command.SilenceUsage = true

	persistentFlags.AddToCommand(Command, true)

	cobra.OnInitialize(func() {
		persistentFlags.BindViper(Command, true)
		cli.InitLogging(viper.GetString("log-level"))
		logrus.Debugf("initialised logging at level[%s]", viper.GetString("log-level"))
	})

	cli.InitConfig()
}

var Command = &cobra.Command{
	Use:   "dontverifyme",
	Short: "Track your motorcycle tires, not your identity",
	Long:  "Track your motorcycle tires, not your identity. The service and tooling behind dontverify.me",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

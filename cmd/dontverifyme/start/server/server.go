package server

import (
	"context"
	"fmt"

	"dontverifyme/internal/cli"
	"dontverifyme/internal/common"
	"dontverifyme/internal/controller"
	"dontverifyme/internal/email"
	"dontverifyme/internal/persistence"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "api-keys",
		DefaultValue: []string{},
		Usage:        "specifies api keys granting access to the internal-only endpoints",
		Type:         cli.FlagTypeStringSlice,
	},
	{
		Name:         "icon-store-path",
		DefaultValue: "./data/icons",
		Usage:        "specifies the directory where uploaded platform icons are stored",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "listen-addr",
		DefaultValue: "0.0.0.0:54321",
		Usage:        "specifies the listen address of the server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-host",
		Short:        'H',
		DefaultValue: "127.0.0.1:3306",
		Usage:        "specifies the host (including port) of the database",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-database",
		Short:        'N',
		DefaultValue: "dontverifyme",
		Usage:        "specifies the name of the central database schema",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-user",
		Short:        'U',
		DefaultValue: "dontverifyme",
		Usage:        "specifies the username to use to login",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-password",
		Short:        'p',
		DefaultValue: "password",
		Usage:        "specifies the password to use to login",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "nats-addr",
		DefaultValue: "localhost:4222",
		Usage:        "specifies the hostname (including port) of the nats server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "nats-username",
		DefaultValue: "dontverifyme",
		Usage:        "specifies the username used to login to nats",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "nats-password",
		DefaultValue: "password",
		Usage:        "specifies the password used to login to nats",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "public-server-url",
		DefaultValue: "",
		Usage:        "specifies a url where the server can be accessed via - required for emails to work properly",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "redis-addr",
		DefaultValue: "localhost:6379",
		Usage:        "defines the hostname (including port) of the redis server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "redis-username",
		DefaultValue: "dontverifyme",
		Usage:        "defines the username used to login to redis",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "redis-password",
		DefaultValue: "password",
		Usage:        "defines the password used to login to redis",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "sender-email",
		DefaultValue: "noreply@notification.dontverify.me",
		Usage:        "defines the notification sender's address",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "sender-name",
		DefaultValue: "dontverify.me",
		Usage:        "defines the notification sender's name",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "session-signing-token",
		DefaultValue: "super_secret_session_signing_token",
		Usage:        "specifies the token used to sign sessions",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "smtp-username",
		DefaultValue: "noreply@notification.dontverify.me",
		Usage:        "defines the smtp server user's email address",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "smtp-password",
		DefaultValue: "",
		Usage:        "defines the smtp server user's password",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "smtp-hostname",
		DefaultValue: "smtp.eu.mailgun.org",
		Usage:        "defines the smtp server's hostname",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "smtp-port",
		DefaultValue: 587,
		Usage:        "defines the smtp server's port",
		Type:         cli.FlagTypeInteger,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:     "server",
	Aliases: []string{"s"},
	Short:   "Starts the api server",
	Long:    "Starts the api server which the web application and cli talk to",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.Debugf("starting logging engine...")
		serviceLogs := make(chan common.ServiceLog, 64)
		common.StartServiceLogLoop(serviceLogs)
		logrus.Debugf("started logging engine")

		logrus.Infof("establishing connection to database...")
		databaseConnection := persistence.NewMysql(
			persistence.MysqlConnectionOpts{
				AppName:  "dontverifyme/server",
				Host:     viper.GetString("mysql-host"),
				Database: viper.GetString("mysql-database"),
			},
			persistence.MysqlAuthOpts{
				Username: viper.GetString("mysql-user"),
				Password: viper.GetString("mysql-password"),
			},
			&serviceLogs,
		)
		if err := databaseConnection.Init(); err != nil {
			return fmt.Errorf("failed to establish connection to database: %w", err)
		}
		defer databaseConnection.Shutdown()
		logrus.Debugf("established connection to database")

		logrus.Infof("establishing connection to cache...")
		cacheConnection := persistence.NewRedis(
			persistence.RedisConnectionOpts{
				AppName: "dontverifyme/server",
				Addr:    viper.GetString("redis-addr"),
			},
			persistence.RedisAuthOpts{
				Username: viper.GetString("redis-username"),
				Password: viper.GetString("redis-password"),
			},
			&serviceLogs,
		)
		if err := cacheConnection.Init(); err != nil {
			return fmt.Errorf("failed to establish connection to cache: %w", err)
		}
		defer cacheConnection.Shutdown()
		logrus.Debugf("established connection to cache")

		logrus.Infof("establishing connection to queue...")
		queueConnection, err := persistence.NewNats(
			persistence.NatsConnectionOpts{
				AppName: "dontverifyme/server",
				Host:    viper.GetString("nats-addr"),
			},
			persistence.NatsAuthOpts{
				Username: viper.GetString("nats-username"),
				Password: viper.GetString("nats-password"),
			},
			&serviceLogs,
		)
		if err != nil {
			return fmt.Errorf("failed to create queue connection: %w", err)
		}
		if err := queueConnection.Init(); err != nil {
			return fmt.Errorf("failed to establish connection to queue: %w", err)
		}
		defer queueConnection.Shutdown()
		logrus.Debugf("established connection to queue")

		logrus.Infof("initialising application...")
		listenAddress := viper.GetString("listen-addr")
		publicServerUrl := viper.GetString("public-server-url")
		if publicServerUrl == "" {
			publicServerUrl = fmt.Sprintf("http://%s", listenAddress)
		}
		applicationOpts := controller.HttpApplicationOpts{
			ApiKeys:            viper.GetStringSlice("api-keys"),
			CacheConnection:    cacheConnection,
			DatabaseConnection: databaseConnection,
			EmailConfig: &controller.SmtpServerConfig{
				Hostname: viper.GetString("smtp-hostname"),
				Port:     viper.GetInt("smtp-port"),
				Username: viper.GetString("smtp-username"),
				Password: viper.GetString("smtp-password"),
				Sender: email.User{
					Address: viper.GetString("sender-email"),
					Name:    viper.GetString("sender-name"),
				},
			},
			IconStorePath: viper.GetString("icon-store-path"),
			ReadinessChecks: []func() error{
				func() error {
					if !databaseConnection.GetStatus().IsOk() {
						return fmt.Errorf("database connection is pending restoration")
					}
					return nil
				},
				func() error {
					if !cacheConnection.GetStatus().IsOk() {
						return fmt.Errorf("cache connection is pending restoration")
					}
					return nil
				},
			},
			PublicServerUrl:     publicServerUrl,
			QueueConnection:     queueConnection,
			ServiceLogs:         serviceLogs,
			SessionSigningToken: viper.GetString("session-signing-token"),
		}
		applicationHandler, err := controller.GetHttpApplication(applicationOpts)
		if err != nil {
			return fmt.Errorf("failed to initialise application: %w", err)
		}
		logrus.Debugf("initialised application")

		logrus.Infof("starting email worker...")
		workerContext, cancelWorker := context.WithCancel(cmd.Context())
		defer cancelWorker()
		go func() {
			if err := controller.StartEmailWorker(workerContext); err != nil {
				logrus.Errorf("email worker stopped: %s", err)
			}
		}()
		logrus.Debugf("started email worker")

		httpServerDone := make(chan common.Done)
		server, err := common.NewHttpServer(common.NewHttpServerOpts{
			Addr:        listenAddress,
			Done:        httpServerDone,
			Handler:     applicationHandler,
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to create new http server: %w", err)
		}
		logrus.Infof("starting server...")
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start http server: %w", err)
		}
		return nil
	},
}

package migrations

import (
	"fmt"

	"dontverifyme/internal/cli"
	"dontverifyme/internal/common"
	"dontverifyme/internal/controller"
	"dontverifyme/internal/persistence"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "force",
		DefaultValue: 0,
		Usage:        "forces the schema version to the provided value to clear a dirty migration state",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "steps",
		DefaultValue: 0,
		Usage:        "applies only the given number of migrations instead of all pending ones",
		Type:         cli.FlagTypeInteger,
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
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:   "migrations",
	Short: "Runs any pending database migrations",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceLogs := make(chan common.ServiceLog, 64)
		common.StartServiceLogLoop(serviceLogs)

		logrus.Infof("establishing connection to database...")
		databaseConnection := persistence.NewMysql(
			persistence.MysqlConnectionOpts{
				AppName:  "dontverifyme/migrations",
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

		migrationOpts := controller.MigrateDatabaseOpts{
			Connection:  databaseConnection.GetClient(),
			Force:       viper.GetInt("force"),
			ServiceLogs: serviceLogs,
		}
		if steps := viper.GetInt("steps"); steps > 0 {
			migrationOpts.Steps = &steps
		}
		output, err := controller.MigrateDatabase(migrationOpts)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if len(output.VersionsApplied) == 0 {
			logrus.Infof("database schema is already up-to-date at version[%v]", output.PostMigrationVersion)
			return nil
		}
		logrus.Infof("applied %d migration(s), schema moved from version[%v] to version[%v]",
			len(output.VersionsApplied),
			output.PreMigrationVersion,
			output.PostMigrationVersion,
		)
		return nil
	},
}

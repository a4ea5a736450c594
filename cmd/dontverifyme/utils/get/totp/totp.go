package totp

import (
	"fmt"
	"time"

	"dontverifyme/internal/auth"
	"dontverifyme/internal/cli"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "seed",
		DefaultValue: "",
		Usage:        "the seed to use for generating totp codes",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "validity",
		DefaultValue: 10 * time.Minute,
		Usage:        "how far into the future to generate codes for",
		Type:         cli.FlagTypeDuration,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:   "totp",
	Short: "Generates a TOTP seed and a window of TOTP codes",
	Long:  "Generates a TOTP seed and a window of TOTP codes. If no seed is specified, generates a TOTP seed",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := viper.GetString("seed")
		if seed == "" {
			var err error
			seed, err = auth.CreateTotpSeed("dontverifyme", "utils")
			if err != nil {
				return fmt.Errorf("failed to create totp seed: %w", err)
			}
			logrus.Infof("generated the following totp seed")
			fmt.Println(seed)
		}
		validity := viper.GetDuration("validity")
		logrus.Infof("generating totp codes for the coming %s:", validity)
		for at := time.Now(); time.Until(at) < validity; at = at.Add(30 * time.Second) {
			code, err := auth.GenerateTotpToken(seed, at)
			if err != nil {
				return fmt.Errorf("failed to create totp code: %w", err)
			}
			fmt.Printf("%s (from %s)\n", code, at.Truncate(30*time.Second).Format(time.TimeOnly))
		}
		return nil
	},
}

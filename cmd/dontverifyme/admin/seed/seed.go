package seed

import (
	"errors"
	"fmt"
	"os"

	"dontverifyme/internal/cli"
	"dontverifyme/pkg/dvm"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "api-key",
		DefaultValue: "",
		Usage:        "an api key granting access to the internal-only endpoints",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "controller-url",
		DefaultValue: "http://localhost:54321",
		Usage:        "defines the url where the api server is accessible at",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "file",
		Short:        'f',
		DefaultValue: "./seed.yaml",
		Usage:        "path to the yaml file holding the platforms and guides to seed",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "publish",
		DefaultValue: false,
		Usage:        "when specified, seeded guides are published immediately",
		Type:         cli.FlagTypeBool,
	},
}

func init() {
	flags.AddToCommand(Command)
}

type seedFile struct {
	Platforms []seedPlatform `yaml:"platforms"`
}

type seedPlatform struct {
	Name        string      `yaml:"name"`
	Url         *string     `yaml:"url"`
	Description *string     `yaml:"description"`
	Guides      []seedGuide `yaml:"guides"`
}

type seedGuide struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

var Command = &cobra.Command{
	Use:   "seed",
	Short: "Seeds an instance with platforms and privacy guides",
	Long:  "Seeds an instance with platforms and privacy guides from a yaml file. Requires an api key with access to the internal-only endpoints",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := viper.GetString("api-key")
		if apiKey == "" {
			return fmt.Errorf("an api key is required, specify one using --api-key")
		}

		seedFilePath := viper.GetString("file")
		seedFileData, err := os.ReadFile(seedFilePath)
		if err != nil {
			return fmt.Errorf("failed to read seed file at path[%s]: %s", seedFilePath, err)
		}
		var seedData seedFile
		if err := yaml.Unmarshal(seedFileData, &seedData); err != nil {
			return fmt.Errorf("failed to parse seed file at path[%s]: %s", seedFilePath, err)
		}
		if len(seedData.Platforms) == 0 {
			return fmt.Errorf("seed file at path[%s] holds no platforms", seedFilePath)
		}

		client, err := dvm.NewClient(dvm.NewClientOpts{
			ControllerUrl: viper.GetString("controller-url"),
			ApiKey:        apiKey,
			Id:            "dontverifyme/admin/seed",
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %s", err)
		}

		isPublishing := viper.GetBool("publish")
		for _, platform := range seedData.Platforms {
			createPlatformOutput, err := client.CreatePlatformV1(dvm.CreatePlatformV1Input{
				Name:        platform.Name,
				Url:         platform.Url,
				Description: platform.Description,
			})
			if err != nil {
				if errors.Is(err, dvm.ErrorDuplicateEntry) {
					logrus.Warnf("platform[%s] already exists, skipping", platform.Name)
					continue
				}
				return fmt.Errorf("failed to create platform[%s]: %s", platform.Name, err)
			}
			platformId := createPlatformOutput.Data.Id
			logrus.Infof("created platform[%s] with id[%s]", createPlatformOutput.Data.Slug, platformId)
			if isPublishing {
				isPublished := true
				if _, err := client.UpdatePlatformV1(dvm.UpdatePlatformV1Input{
					Slug:        createPlatformOutput.Data.Slug,
					IsPublished: &isPublished,
				}); err != nil {
					return fmt.Errorf("failed to publish platform[%s]: %s", createPlatformOutput.Data.Slug, err)
				}
				logrus.Infof("published platform[%s]", createPlatformOutput.Data.Slug)
			}

			for _, guide := range platform.Guides {
				createArticleOutput, err := client.CreateArticleV1(dvm.CreateArticleV1Input{
					PlatformId: &platformId,
					Title:      guide.Title,
					Body:       guide.Body,
				})
				if err != nil {
					if errors.Is(err, dvm.ErrorDuplicateEntry) {
						logrus.Warnf("guide[%s] already exists, skipping", guide.Title)
						continue
					}
					return fmt.Errorf("failed to create guide[%s]: %s", guide.Title, err)
				}
				logrus.Infof("created guide[%s]", createArticleOutput.Data.Slug)
				if isPublishing {
					if _, err := client.PublishArticleV1(dvm.PublishArticleV1Input{
						Slug: createArticleOutput.Data.Slug,
					}); err != nil {
						return fmt.Errorf("failed to publish guide[%s]: %s", createArticleOutput.Data.Slug, err)
					}
					logrus.Infof("published guide[%s]", createArticleOutput.Data.Slug)
				}
			}
		}
		fmt.Println("✅ Seeding completed")
		return nil
	},
}

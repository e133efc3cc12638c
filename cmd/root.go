package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cv-ranker/internal/export"
	"github.com/spigell/cv-ranker/internal/shortlist"
)

const (
	app       = "cv-ranker"
	envPrefix = "CV_RANKER"
)

type Config struct {
	Input              string            `mapstructure:"input"`
	JobDescription     string            `mapstructure:"job-description"`
	JobDescriptionFile string            `mapstructure:"job-description-file"`
	Export             *ExportConfig     `mapstructure:"export"`
	Shortlist          *shortlist.Config `mapstructure:"shortlist"`
}

type ExportConfig struct {
	JSON string `mapstructure:"json"`
	XLSX string `mapstructure:"xlsx"`

	export.Options `mapstructure:",squash"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-ranker scores candidate resumes against a job description and ranks them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	// Defaults make every key visible to the environment lookup.
	viper.SetDefault("input", "")
	viper.SetDefault("job-description", "")
	viper.SetDefault("job-description-file", "")
	viper.SetDefault("export.json", export.DefaultJSONFile)
	viper.SetDefault("export.xlsx", "")
	viper.SetDefault("export.include-reasoning", false)
	viper.SetDefault("export.include-skills", false)
	viper.SetDefault("export.include-experience", false)
	viper.SetDefault("shortlist.minimum-score", 0)
	viper.SetDefault("shortlist.top", 0)
	viper.SetDefault("shortlist.exclude-file", "")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Only the rank command reads the config file.
	if rankCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{
		Export:    &ExportConfig{},
		Shortlist: &shortlist.Config{},
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}

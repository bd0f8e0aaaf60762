package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/config"
	"github.com/bookarc/bookarc/internal/output"
)

var (
	configureDatabaseURL string
	configureLogLevel    string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save the CLI configuration",
	Run: func(_ *cobra.Command, _ []string) {
		if configureDatabaseURL == "" {
			output.Fatal("--database-url is required")
		}

		err := config.SaveCLI(&config.CLIConfig{
			DatabaseURL: configureDatabaseURL,
			LogLevel:    configureLogLevel,
		})
		fatalIfErr(err)

		output.Success("Configuration saved")
		output.KeyValue("Config file", "~/"+config.CLIConfigDirName+"/"+config.CLIConfigFileName)
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureDatabaseURL, "database-url", "", "PostgreSQL connection string")
	configureCmd.Flags().StringVar(&configureLogLevel, "log-level", "INFO", "Log level for CLI commands")
	rootCmd.AddCommand(configureCmd)
}

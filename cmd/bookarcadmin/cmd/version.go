package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the CLI",
	Run: func(_ *cobra.Command, _ []string) {
		output.Header("📚 " + constants.ProjectName)
		output.KeyValue("CLI version", *constants.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Run: func(_ *cobra.Command, _ []string) {
		dsn, err := loadDatabaseURL()
		fatalIfErr(err)

		output.Info("Applying migrations...")
		fatalIfErr(postgres.Migrate(dsn))
		output.Success("Schema is up to date")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

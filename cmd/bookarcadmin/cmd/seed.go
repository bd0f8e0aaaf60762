package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/output"
)

// defaultGenres is the starter genre catalog for a fresh deployment.
var defaultGenres = []string{
	"Fiction",
	"Fantasy",
	"Science Fiction",
	"Mystery",
	"Thriller",
	"Romance",
	"Horror",
	"Historical Fiction",
	"Contemporary",
	"Biography",
	"Non-Fiction",
	"Poetry",
	"Young Adult",
	"Self-Help",
	"Graphic Novel",
}

var seedGenresCmd = &cobra.Command{
	Use:   "seed-genres",
	Short: "Insert the starter genre catalog",
	Long: `Inserts the starter genres into the catalog. Genres that already
exist are left untouched, so the command is safe to re-run.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		fatalIfErr(err)
		defer pool.Close()

		catalog := postgres.NewCatalogRepo(pool)
		inserted, err := catalog.SeedGenres(ctx, defaultGenres)
		fatalIfErr(err)

		if inserted == 0 {
			output.Info("Genre catalog already seeded")
			return
		}
		output.Success("Seeded %d genres", inserted)
	},
}

func init() {
	rootCmd.AddCommand(seedGenresCmd)
}

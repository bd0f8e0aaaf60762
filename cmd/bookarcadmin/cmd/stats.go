package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform-wide counters",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		fatalIfErr(err)
		defer pool.Close()

		users := postgres.NewUserRepo(pool)
		stats, err := users.GetAdminStats(ctx)
		fatalIfErr(err)

		output.Header("📚 bookarc platform stats")
		output.KeyValue("Users", strconv.Itoa(stats.TotalUsers))
		output.KeyValue("Active users", strconv.Itoa(stats.ActiveUsers))
		output.KeyValue("Authors", strconv.Itoa(stats.TotalAuthors))
		output.KeyValue("Books", strconv.Itoa(stats.TotalBooks))
		output.KeyValue("Pending books", strconv.Itoa(stats.PendingBooks))
		output.KeyValue("Ratings", strconv.Itoa(stats.TotalRatings))
		output.KeyValue("Reviews", strconv.Itoa(stats.TotalReviews))
		output.KeyValue("Pending verifications", strconv.Itoa(stats.PendingVerifications))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

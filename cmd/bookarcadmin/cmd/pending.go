package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/output"
)

var pendingLimit int

var pendingBooksCmd = &cobra.Command{
	Use:   "pending-books",
	Short: "List books waiting for moderation",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		fatalIfErr(err)
		defer pool.Close()

		catalog := postgres.NewCatalogRepo(pool)
		books, total, err := catalog.ListBooks(ctx, database.BookFilter{
			Status: constants.StatusPending,
			SortBy: "recent",
			Limit:  pendingLimit,
		})
		fatalIfErr(err)

		if total == 0 {
			output.Success("No books waiting for review")
			return
		}

		output.Header("Pending books")
		rows := make([][]string, 0, len(books))
		for _, b := range books {
			uploader := ""
			if b.UploadedBy != nil {
				uploader = strconv.FormatInt(*b.UploadedBy, 10)
			}
			rows = append(rows, []string{
				strconv.FormatInt(b.BookID, 10),
				b.Title,
				uploader,
				b.CreatedAt.Format("2006-01-02"),
			})
		}
		output.Table([]string{"Book ID", "Title", "Uploader", "Submitted"}, rows)
		output.Blank()
		output.Info("%d of %d pending books shown", len(books), total)
	},
}

func init() {
	pendingBooksCmd.Flags().IntVar(&pendingLimit, "limit", 20, "Maximum number of books to list")
	rootCmd.AddCommand(pendingBooksCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/output"
)

var promoteYes bool

var promoteAdminCmd = &cobra.Command{
	Use:   "promote-admin <username>",
	Short: "Promote a user to the admin role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		username := args[0]

		pool, err := openPool(ctx)
		fatalIfErr(err)
		defer pool.Close()

		users := postgres.NewUserRepo(pool)
		user, err := users.GetUserByUsername(ctx, username)
		fatalIfErr(err)
		if user == nil {
			output.Fatal("no user named %q", username)
		}
		if user.Role == constants.RoleAdmin {
			output.Warning("%s is already an admin", username)
			return
		}

		if !promoteYes && !output.Confirm("Promote "+username+" to admin?") {
			output.Info("Aborted")
			return
		}

		fatalIfErr(users.SetRoleAndVerification(ctx, user.UserID, constants.RoleAdmin, user.VerificationStatus))
		output.Success("%s is now an admin", username)
	},
}

func init() {
	promoteAdminCmd.Flags().BoolVarP(&promoteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(promoteAdminCmd)
}

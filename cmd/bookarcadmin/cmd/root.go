package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/bookarc/bookarc/internal/config"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/logger"
	"github.com/bookarc/bookarc/internal/output"
)

var (
	debug         bool
	timeout       time.Duration
	timeoutCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName + "admin",
	Short: "Operator tooling for the bookarc backend",
	Long: fmt.Sprintf(`%sadmin manages a bookarc deployment: schema migrations, the genre
catalog, role promotion, and platform statistics. It talks to the database
directly, so it needs BOOKARC_DATABASE_URL or a saved configuration.`, constants.ProjectName),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger.Initialize(constants.Development, logLevel)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		timeoutCancel = cancel // Stored for cleanup in Execute()
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute runs the root command and releases the command timeout.
func Execute() {
	err := rootCmd.Execute()
	if timeoutCancel != nil {
		timeoutCancel()
	}

	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for the command")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debugging logs")
}

// loadDatabaseURL resolves the connection string from the CLI configuration.
func loadDatabaseURL() (string, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("no database URL configured: set BOOKARC_DATABASE_URL or run '%sadmin configure'", constants.ProjectName)
	}
	return cfg.DatabaseURL, nil
}

// openPool connects to the configured database for the duration of a command.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, err := loadDatabaseURL()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, dsn, 2, 0, 5*time.Minute)
}

// fatalIfErr prints the error and exits. Keeps command bodies short.
func fatalIfErr(err error) {
	if err != nil {
		output.Fatal("%v", err)
	}
}

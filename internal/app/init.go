package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bookarc/bookarc/internal/config"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database/postgres"
	"github.com/bookarc/bookarc/internal/identity"
	"github.com/bookarc/bookarc/internal/storage"
)

// Initialize creates a fully wired Service from configuration: the pgx
// connection pool, every repository, the S3 presigner, and the Cognito
// identity provider. Callers should handle errors and potentially panic
// if initialization fails during startup.
func Initialize(ctx context.Context, cfg *config.Env, logger *slog.Logger) (*Service, error) {
	logger.Debug(fmt.Sprintf("initializing %s service", constants.ProjectName),
		"version", *constants.GetVersion(),
	)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := Repositories{
		Users:           postgres.NewUserRepo(pool),
		Catalog:         postgres.NewCatalogRepo(pool),
		Ratings:         postgres.NewRatingRepo(pool),
		Reviews:         postgres.NewReviewRepo(pool),
		Lists:           postgres.NewListRepo(pool),
		Social:          postgres.NewSocialRepo(pool),
		Notifications:   postgres.NewNotificationRepo(pool),
		Recommendations: postgres.NewRecommendationRepo(pool),
		Verification:    postgres.NewVerificationRepo(pool),
		Audit:           postgres.NewAuditRepo(pool),
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	store := storage.NewFromClient(s3.NewFromConfig(awsCfg), cfg.UploadsBucket)
	identityProvider := identity.NewProvider(cognitoidentityprovider.NewFromConfig(awsCfg))

	logger.Debug(constants.ProjectName + " service initialized successfully")

	return NewService(repos, store, identityProvider, logger), nil
}

// MustInitialize wires a Service from the environment and exits on failure.
// Suitable for process startup where configuration errors are fatal.
func MustInitialize(ctx context.Context, cfg *config.Env, logger *slog.Logger) *Service {
	svc, err := Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}
	return svc
}

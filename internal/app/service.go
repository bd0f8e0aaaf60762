// Package app provides the core business logic for bookarc: accounts,
// the book catalog, the social graph, reading lists, ratings and reviews,
// notifications, and the recommendation selector. Handlers stay thin and
// delegate here; this package delegates persistence to the repositories.
package app

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
	"github.com/bookarc/bookarc/internal/identity"
	"github.com/bookarc/bookarc/internal/storage"
)

var validate = validator.New()

const (
	defaultPageSize = constants.DefaultPageSize
	maxPageSize     = constants.MaxPageSize
)

// Repositories bundles every repository the service depends on.
type Repositories struct {
	Users           database.UserRepository
	Catalog         database.CatalogRepository
	Ratings         database.RatingRepository
	Reviews         database.ReviewRepository
	Lists           database.ListRepository
	Social          database.SocialRepository
	Notifications   database.NotificationRepository
	Recommendations database.RecommendationRepository
	Verification    database.VerificationRepository
	Audit           database.AuditRepository
}

// Service provides the core business logic for the bookarc backend.
type Service struct {
	repos    Repositories
	notifier *Notifier
	storage  *storage.Storage
	identity *identity.Provider
	Logger   *slog.Logger
}

// NewService creates a new service instance. storage and identityProvider may
// be nil when the deployment does not configure uploads or password changes;
// the corresponding operations then fail with a service error.
func NewService(
	repos Repositories,
	store *storage.Storage,
	identityProvider *identity.Provider,
	logger *slog.Logger,
) *Service {
	return &Service{
		repos:    repos,
		notifier: NewNotifier(repos.Notifications, logger),
		storage:  store,
		identity: identityProvider,
		Logger:   logger,
	}
}

// validateRequest runs struct validation and converts failures into a 400.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return apperrors.ErrBadRequest("invalid request: "+err.Error(), err)
	}
	return nil
}

// clampPage normalizes limit/offset to sane bounds.
func clampPage(limit, offset, def, max int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

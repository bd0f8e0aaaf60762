// Package database defines repository interfaces for data persistence.
// It provides abstractions over the relational schema so the business logic
// layer does not depend on a concrete driver.
package database

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
)

// BookFilter narrows public book listings.
type BookFilter struct {
	// Search matches against the book title, case-insensitively.
	Search string
	// GenreID restricts results to one genre when > 0.
	GenreID int64
	// Status filters by approval status; empty means approved only.
	Status string
	// SortBy is "rating" or "recent".
	SortBy string
	Limit  int
	Offset int
}

// UserRepository defines the interface for user-related database operations.
// Get methods return nil (without an error) when no row matches.
type UserRepository interface {
	// CreateUser stores a new user row and returns its generated id.
	CreateUser(ctx context.Context, user *api.User) (int64, error)

	// GetUserBySub retrieves a user by their identity-provider subject.
	GetUserBySub(ctx context.Context, sub string) (*api.User, error)

	// GetUserByUsername retrieves a user by their unique username.
	GetUserByUsername(ctx context.Context, username string) (*api.User, error)

	// GetUserByID retrieves a user by their id.
	GetUserByID(ctx context.Context, userID int64) (*api.User, error)

	// UpdateProfile applies partial profile updates and returns the updated row.
	UpdateProfile(ctx context.Context, userID int64, displayName, bio *string, isPublic *bool) (*api.User, error)

	// UpdateProfilePicture records the public URL of an uploaded picture.
	UpdateProfilePicture(ctx context.Context, userID int64, url string) error

	// DeleteUser removes the user row; dependent rows cascade.
	DeleteUser(ctx context.Context, userID int64) error

	// SearchUsers finds active public users by username or display name.
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]api.User, int, error)

	// ListUsers returns users for the admin dashboard, optionally filtered
	// by role and active flag.
	ListUsers(ctx context.Context, role string, activeOnly *bool, limit, offset int) ([]api.User, int, error)

	// SetActive toggles the soft-disable flag.
	SetActive(ctx context.Context, userID int64, active bool) error

	// SetRoleAndVerification updates role and verification status together,
	// used by the author verification workflow.
	SetRoleAndVerification(ctx context.Context, userID int64, role, verificationStatus string) error

	// GetUserStats aggregates the user's activity counters.
	GetUserStats(ctx context.Context, userID int64) (*api.UserStats, error)

	// GetAdminStats aggregates platform-wide counters.
	GetAdminStats(ctx context.Context) (*api.AdminStats, error)
}

// CatalogRepository covers books, authors, genres, and their links.
type CatalogRepository interface {
	ListBooks(ctx context.Context, filter BookFilter) ([]api.Book, int, error)
	GetBook(ctx context.Context, bookID int64) (*api.Book, error)

	// CreateBook inserts the book and its author/genre links in one
	// transaction, returning the new id.
	CreateBook(ctx context.Context, book *api.Book, authorIDs, genreIDs []int64) (int64, error)

	// SetApproval moves a book through the approval workflow.
	SetApproval(ctx context.Context, bookID int64, status string, approvedBy int64, reason *string) error

	// ListBooksByUploader returns an uploader's books, optionally filtered
	// by approval status.
	ListBooksByUploader(ctx context.Context, uploaderID int64, status string) ([]api.Book, error)

	// AuthorBookStats returns per-book rating counters for an uploader.
	AuthorBookStats(ctx context.Context, uploaderID int64) ([]api.BookRatingStats, error)

	GetAuthor(ctx context.Context, authorID int64) (*api.Author, error)
	GetAuthorByUserID(ctx context.Context, userID int64) (*api.Author, error)
	CreateAuthor(ctx context.Context, author *api.Author) (int64, error)
	SearchAuthors(ctx context.Context, query string, limit, offset int) ([]api.Author, int, error)

	ListGenres(ctx context.Context) ([]api.Genre, error)

	// SeedGenres inserts any of the named genres that do not already exist,
	// returning the number inserted. Used by operator tooling.
	SeedGenres(ctx context.Context, names []string) (int, error)

	GetGenre(ctx context.Context, genreID int64) (*api.Genre, error)
	AddFavoriteGenre(ctx context.Context, userID, genreID int64) error
	RemoveFavoriteGenre(ctx context.Context, userID, genreID int64) error
	ListFavoriteGenres(ctx context.Context, userID int64) ([]api.Genre, error)
}

// RatingRepository covers book and author star ratings. Upserts overwrite
// the previous value (last value wins) and recompute the derived average in
// the same transaction, returning the new average.
type RatingRepository interface {
	UpsertBookRating(ctx context.Context, userID, bookID int64, rating int) (float64, error)
	GetBookRating(ctx context.Context, userID, bookID int64) (*api.Rating, error)
	DeleteBookRating(ctx context.Context, userID, bookID int64) (float64, error)

	UpsertAuthorRating(ctx context.Context, userID, authorID int64, rating int) (float64, error)
	GetAuthorRating(ctx context.Context, userID, authorID int64) (*api.Rating, error)
	DeleteAuthorRating(ctx context.Context, userID, authorID int64) (float64, error)
}

// ReviewRepository covers book and author reviews (at most one per pair).
type ReviewRepository interface {
	CreateBookReview(ctx context.Context, userID, bookID int64, text string) (*api.Review, error)
	ListBookReviews(ctx context.Context, bookID int64, limit, offset int) ([]api.Review, int, error)
	DeleteBookReview(ctx context.Context, userID, reviewID int64) error

	CreateAuthorReview(ctx context.Context, userID, authorID int64, text string) (*api.Review, error)
	ListAuthorReviews(ctx context.Context, authorID int64, limit, offset int) ([]api.Review, int, error)
	DeleteAuthorReview(ctx context.Context, userID, reviewID int64) error
}

// ListRepository covers reading lists and their membership table.
type ListRepository interface {
	// CreateDefaultLists provisions the five default private lists.
	// Idempotent: lists that already exist are left untouched.
	CreateDefaultLists(ctx context.Context, userID int64) error

	CreateCustomList(ctx context.Context, userID int64, title, visibility string) (*api.List, error)
	GetList(ctx context.Context, listID int64) (*api.List, error)
	ListUserLists(ctx context.Context, userID int64) ([]api.List, error)
	ListPublicLists(ctx context.Context, userID int64) ([]api.List, error)
	UpdateList(ctx context.Context, listID int64, title, visibility *string) (*api.List, error)
	DeleteList(ctx context.Context, listID int64) error

	// AddBookToList is an idempotent upsert: re-adding refreshes added_at.
	AddBookToList(ctx context.Context, listID, bookID int64) error
	RemoveBookFromList(ctx context.Context, listID, bookID int64) error
	ListBooksInList(ctx context.Context, listID int64) ([]api.ListBookEntry, error)
	ListMembershipForBook(ctx context.Context, userID, bookID int64) ([]api.ListMembership, error)
}

// SocialRepository covers user→user and user→author follow edges.
type SocialRepository interface {
	// FollowUser inserts the edge; a duplicate returns a conflict error.
	FollowUser(ctx context.Context, followerID, followingID int64) error

	// UnfollowUser removes the edge; returns false when no edge existed.
	UnfollowUser(ctx context.Context, followerID, followingID int64) (bool, error)

	IsFollowingUser(ctx context.Context, followerID, followingID int64) (bool, error)

	FollowAuthor(ctx context.Context, userID, authorID int64) error
	UnfollowAuthor(ctx context.Context, userID, authorID int64) (bool, error)
	IsFollowingAuthor(ctx context.Context, userID, authorID int64) (bool, error)

	ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error)
	ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error)
}

// NotificationRepository covers the append-only notification table and the
// per-user preference row.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *api.Notification) (int64, error)

	// CreateForFollowers bulk-inserts one notification per follower of the
	// author linked to authorUserID, returning the number inserted.
	CreateForFollowers(ctx context.Context, authorUserID int64, message, notificationType, audienceType string) (int, error)

	// ListNotifications returns a page plus the total and unread counts.
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]api.Notification, int, int, error)

	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteNotification(ctx context.Context, userID, notificationID int64) error

	// GetPreferences returns nil when the user has no preference row.
	GetPreferences(ctx context.Context, userID int64) (*api.NotificationPreferences, error)
	UpsertPreferences(ctx context.Context, userID int64, inApp, follow, rating, approval *bool) (*api.NotificationPreferences, error)
}

// RecommendationRepository is the read path of the candidate selector plus
// the interaction event sink.
type RecommendationRepository interface {
	// ExcludedBookIDs returns book ids the user has rated, reviewed, or has
	// any reading-status record for.
	ExcludedBookIDs(ctx context.Context, userID int64) ([]int64, error)

	// CandidatesByGenres returns approved books in the given genres, minus
	// the excluded set, ordered by (matching genre count desc, average
	// rating desc, random).
	CandidatesByGenres(ctx context.Context, genreIDs, exclude []int64, limit int) ([]api.Recommendation, error)

	// CandidatesByRating returns approved books with average rating at or
	// above minRating, minus the excluded set, ordered by (average rating
	// desc, random).
	CandidatesByRating(ctx context.Context, exclude []int64, minRating float64, limit int) ([]api.Recommendation, error)

	// TopRated returns the globally top-rated approved books with no
	// exclusions, ordered by (average rating desc, random).
	TopRated(ctx context.Context, limit int) ([]api.Recommendation, error)

	RecordInteraction(ctx context.Context, event *api.InteractionEvent) error
}

// VerificationRepository covers author verification requests.
type VerificationRepository interface {
	CreateRequest(ctx context.Context, req *api.VerificationRequest) (int64, error)
	GetRequest(ctx context.Context, requestID int64) (*api.VerificationRequest, error)
	GetOpenRequestByUser(ctx context.Context, userID int64) (*api.VerificationRequest, error)
	GetLatestRequestByUser(ctx context.Context, userID int64) (*api.VerificationRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]api.VerificationRequest, int, error)
	SetStatus(ctx context.Context, requestID int64, status string, reviewedBy int64, reason *string) error
}

// AuditRepository records and lists admin actions.
type AuditRepository interface {
	RecordAction(ctx context.Context, entry *api.AuditLog) error
	ListActions(ctx context.Context, limit, offset int) ([]api.AuditLog, int, error)
}

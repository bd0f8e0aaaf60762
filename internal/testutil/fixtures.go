// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
)

// UserBuilder provides a fluent interface for building test users.
type UserBuilder struct {
	user *api.User
}

// NewUserBuilder creates a new UserBuilder with sensible defaults.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: &api.User{
			UserID:             1,
			CognitoSub:         "sub-test-1",
			Username:           "reader",
			DisplayName:        "Reader",
			Email:              "reader@example.com",
			Role:               constants.RoleNormal,
			VerificationStatus: constants.VerificationNone,
			IsActive:           true,
			IsPublic:           true,
			JoinDate:           time.Now().UTC(),
		},
	}
}

// WithID sets the user ID.
func (b *UserBuilder) WithID(id int64) *UserBuilder {
	b.user.UserID = id
	return b
}

// WithUsername sets the username and display name together.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.user.Username = username
	b.user.DisplayName = username
	return b
}

// WithEmail sets the user's email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithRole sets the user's role.
func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.user.Role = role
	return b
}

// AsAuthor marks the user as a verified author.
func (b *UserBuilder) AsAuthor() *UserBuilder {
	b.user.Role = constants.RoleAuthor
	b.user.VerificationStatus = constants.VerificationApproved
	return b
}

// AsAdmin marks the user as an administrator.
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.user.Role = constants.RoleAdmin
	return b
}

// Disabled marks the user as deactivated.
func (b *UserBuilder) Disabled() *UserBuilder {
	b.user.IsActive = false
	return b
}

// Private marks the user's profile as private.
func (b *UserBuilder) Private() *UserBuilder {
	b.user.IsPublic = false
	return b
}

// Build returns the constructed User.
func (b *UserBuilder) Build() *api.User {
	return b.user
}

// BookBuilder provides a fluent interface for building test books.
type BookBuilder struct {
	book *api.Book
}

// NewBookBuilder creates a new BookBuilder with sensible defaults.
// The book starts in the pending state, matching a fresh submission.
func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		book: &api.Book{
			BookID:         1,
			Title:          "Test Book",
			Summary:        "A book used in tests.",
			ApprovalStatus: constants.StatusPending,
			CreatedAt:      time.Now().UTC(),
		},
	}
}

// WithID sets the book ID.
func (b *BookBuilder) WithID(id int64) *BookBuilder {
	b.book.BookID = id
	return b
}

// WithTitle sets the book title.
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.book.Title = title
	return b
}

// WithUploader sets the uploading user.
func (b *BookBuilder) WithUploader(userID int64) *BookBuilder {
	b.book.UploadedBy = &userID
	return b
}

// WithAuthors sets the author names on the book.
func (b *BookBuilder) WithAuthors(names ...string) *BookBuilder {
	b.book.Authors = names
	return b
}

// WithGenres sets the genre names on the book.
func (b *BookBuilder) WithGenres(names ...string) *BookBuilder {
	b.book.Genres = names
	return b
}

// WithAverageRating sets the aggregate rating.
func (b *BookBuilder) WithAverageRating(avg float64) *BookBuilder {
	b.book.AverageRating = avg
	return b
}

// Approved marks the book as approved by the given admin.
func (b *BookBuilder) Approved(adminID int64) *BookBuilder {
	now := time.Now().UTC()
	b.book.ApprovalStatus = constants.StatusApproved
	b.book.ApprovedBy = &adminID
	b.book.ApprovedAt = &now
	return b
}

// Rejected marks the book as rejected with a reason.
func (b *BookBuilder) Rejected(reason string) *BookBuilder {
	b.book.ApprovalStatus = constants.StatusRejected
	b.book.RejectionReason = reason
	return b
}

// Build returns the constructed Book.
func (b *BookBuilder) Build() *api.Book {
	return b.book
}

// TestContext creates a test context with a reasonable timeout.
// Note: The cancel function is intentionally not returned since test contexts
// are expected to be short-lived and will be cleaned up when the test completes.
func TestContext() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), constants.TestContextTimeout)
	_ = cancel // Silence unused warning - context will timeout automatically
	return ctx
}

// TestLogger creates a logger suitable for testing (outputs to stderr).
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}))
}

// SilentLogger creates a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.NewFile(0, os.DevNull), &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Suppress all logs
	}))
}

package app

import (
	"context"
	"time"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// ListBooks returns a page of approved books matching the filter.
func (s *Service) ListBooks(ctx context.Context, filter database.BookFilter) ([]api.Book, int, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset, defaultPageSize, maxPageSize)
	// Public listings only ever see approved books.
	filter.Status = constants.StatusApproved
	return s.repos.Catalog.ListBooks(ctx, filter)
}

// GetBook returns one book. Unapproved books are visible only to their
// uploader and to admins.
func (s *Service) GetBook(ctx context.Context, caller *api.User, bookID int64) (*api.Book, error) {
	book, err := s.repos.Catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrNotFound("book not found", nil)
	}
	if book.ApprovalStatus != constants.StatusApproved {
		isUploader := book.UploadedBy != nil && caller != nil && *book.UploadedBy == caller.UserID
		isAdmin := caller != nil && caller.Role == constants.RoleAdmin
		if !isUploader && !isAdmin {
			return nil, apperrors.ErrNotFound("book not found", nil)
		}
	}
	return book, nil
}

// requireApprovedBook loads a book and rejects interaction with anything not
// yet approved.
func (s *Service) requireApprovedBook(ctx context.Context, bookID int64) (*api.Book, error) {
	book, err := s.repos.Catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrNotFound("book not found", nil)
	}
	if book.ApprovalStatus != constants.StatusApproved {
		return nil, apperrors.ErrBadRequest("book is not approved", nil)
	}
	return book, nil
}

// SubmitBook creates a pending book for review. Authors without explicit
// author links are linked to their own author record.
func (s *Service) SubmitBook(ctx context.Context, caller *api.User, req api.SubmitBookRequest) (*api.Book, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	authorIDs := req.AuthorIDs
	if len(authorIDs) == 0 {
		own, err := s.repos.Catalog.GetAuthorByUserID(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return nil, apperrors.ErrBadRequest("no author record linked to this account", nil)
		}
		authorIDs = []int64{own.AuthorID}
	}

	if err := s.requireKnownGenres(ctx, req.GenreIDs); err != nil {
		return nil, err
	}

	book, err := newBookFromRequest(req, &caller.UserID, constants.StatusPending)
	if err != nil {
		return nil, err
	}

	id, err := s.repos.Catalog.CreateBook(ctx, book, authorIDs, req.GenreIDs)
	if err != nil {
		return nil, err
	}
	book.BookID = id

	s.notifier.BookSubmitted(ctx, caller.UserID, book.Title)
	s.Logger.Info("book submitted", "book_id", id, "uploaded_by", caller.UserID)
	return book, nil
}

// requireKnownGenres rejects submissions referencing genres that do not exist.
func (s *Service) requireKnownGenres(ctx context.Context, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		genre, err := s.repos.Catalog.GetGenre(ctx, genreID)
		if err != nil {
			return err
		}
		if genre == nil {
			return apperrors.ErrBadRequest("unknown genre", nil)
		}
	}
	return nil
}

func newBookFromRequest(req api.SubmitBookRequest, uploadedBy *int64, status string) (*api.Book, error) {
	book := &api.Book{
		Title:          req.Title,
		Summary:        req.Summary,
		CoverImageURL:  req.CoverImageURL,
		ApprovalStatus: status,
		UploadedBy:     uploadedBy,
	}
	if req.PublishDate != "" {
		t, err := time.Parse("2006-01-02", req.PublishDate)
		if err != nil {
			return nil, apperrors.ErrBadRequest("invalid publish date", err)
		}
		book.PublishDate = &t
	}
	return book, nil
}

// ListMyBooks returns the caller's submissions, optionally by approval status.
func (s *Service) ListMyBooks(ctx context.Context, callerID int64, status string) ([]api.Book, error) {
	if status != "" && status != constants.StatusPending &&
		status != constants.StatusApproved && status != constants.StatusRejected {
		return nil, apperrors.ErrBadRequest("invalid approval status", nil)
	}
	return s.repos.Catalog.ListBooksByUploader(ctx, callerID, status)
}

// MyBookStats returns rating statistics for each of the caller's books.
func (s *Service) MyBookStats(ctx context.Context, callerID int64) ([]api.BookRatingStats, error) {
	return s.repos.Catalog.AuthorBookStats(ctx, callerID)
}

// GetAuthor returns one author.
func (s *Service) GetAuthor(ctx context.Context, authorID int64) (*api.Author, error) {
	author, err := s.repos.Catalog.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.ErrNotFound("author not found", nil)
	}
	return author, nil
}

// SearchAuthors finds authors by name fragment.
func (s *Service) SearchAuthors(ctx context.Context, query string, limit, offset int) ([]api.Author, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Catalog.SearchAuthors(ctx, query, limit, offset)
}

// ListGenres returns the full genre catalog.
func (s *Service) ListGenres(ctx context.Context) ([]api.Genre, error) {
	return s.repos.Catalog.ListGenres(ctx)
}

// AddFavoriteGenre marks a genre as a favorite for recommendations.
func (s *Service) AddFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	genre, err := s.repos.Catalog.GetGenre(ctx, genreID)
	if err != nil {
		return err
	}
	if genre == nil {
		return apperrors.ErrNotFound("genre not found", nil)
	}
	return s.repos.Catalog.AddFavoriteGenre(ctx, userID, genreID)
}

// RemoveFavoriteGenre unmarks a favorite genre.
func (s *Service) RemoveFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	return s.repos.Catalog.RemoveFavoriteGenre(ctx, userID, genreID)
}

// ListFavoriteGenres returns the caller's favorite genres.
func (s *Service) ListFavoriteGenres(ctx context.Context, userID int64) ([]api.Genre, error) {
	return s.repos.Catalog.ListFavoriteGenres(ctx, userID)
}

package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// RateBook upserts the caller's rating for an approved book and returns the
// recomputed average. A re-rating overwrites the previous value. The book's
// uploader is notified on the first rating from this user.
func (s *Service) RateBook(ctx context.Context, caller *api.User, bookID int64, req api.RateRequest) (float64, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	book, err := s.requireApprovedBook(ctx, bookID)
	if err != nil {
		return 0, err
	}

	previous, err := s.repos.Ratings.GetBookRating(ctx, caller.UserID, bookID)
	if err != nil {
		return 0, err
	}

	average, err := s.repos.Ratings.UpsertBookRating(ctx, caller.UserID, bookID, req.Rating)
	if err != nil {
		return 0, err
	}

	if previous == nil && book.UploadedBy != nil && *book.UploadedBy != caller.UserID {
		s.notifier.BookRated(ctx, *book.UploadedBy, book.Title, req.Rating)
	}
	return average, nil
}

// GetMyBookRating returns the caller's rating for a book, or nil when the
// book is unrated.
func (s *Service) GetMyBookRating(ctx context.Context, callerID, bookID int64) (*api.Rating, error) {
	return s.repos.Ratings.GetBookRating(ctx, callerID, bookID)
}

// DeleteBookRating removes the caller's rating and returns the recomputed
// average.
func (s *Service) DeleteBookRating(ctx context.Context, callerID, bookID int64) (float64, error) {
	existing, err := s.repos.Ratings.GetBookRating(ctx, callerID, bookID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, apperrors.ErrNotFound("you have not rated this book", nil)
	}
	return s.repos.Ratings.DeleteBookRating(ctx, callerID, bookID)
}

// RateAuthor upserts the caller's rating for an author. The rater gets a
// confirmation; a registered author is notified through their linked user.
func (s *Service) RateAuthor(ctx context.Context, caller *api.User, authorID int64, req api.RateRequest) (float64, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	author, err := s.repos.Catalog.GetAuthor(ctx, authorID)
	if err != nil {
		return 0, err
	}
	if author == nil {
		return 0, apperrors.ErrNotFound("author not found", nil)
	}
	if author.UserID != nil && *author.UserID == caller.UserID {
		return 0, apperrors.ErrBadRequest("you cannot rate yourself", nil)
	}

	average, err := s.repos.Ratings.UpsertAuthorRating(ctx, caller.UserID, authorID, req.Rating)
	if err != nil {
		return 0, err
	}

	s.notifier.AuthorRatingRecorded(ctx, caller.UserID, author.Name, req.Rating)
	if author.IsRegisteredAuthor && author.UserID != nil {
		s.notifier.AuthorRated(ctx, *author.UserID, req.Rating)
	}
	return average, nil
}

// GetMyAuthorRating returns the caller's rating for an author, or nil.
func (s *Service) GetMyAuthorRating(ctx context.Context, callerID, authorID int64) (*api.Rating, error) {
	return s.repos.Ratings.GetAuthorRating(ctx, callerID, authorID)
}

// DeleteAuthorRating removes the caller's author rating and returns the
// recomputed average.
func (s *Service) DeleteAuthorRating(ctx context.Context, callerID, authorID int64) (float64, error) {
	existing, err := s.repos.Ratings.GetAuthorRating(ctx, callerID, authorID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, apperrors.ErrNotFound("you have not rated this author", nil)
	}
	return s.repos.Ratings.DeleteAuthorRating(ctx, callerID, authorID)
}

package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// ReviewBook creates the caller's review for an approved book. At most one
// review per user and book.
func (s *Service) ReviewBook(ctx context.Context, callerID, bookID int64, req api.ReviewRequest) (*api.Review, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.requireApprovedBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repos.Reviews.CreateBookReview(ctx, callerID, bookID, req.ReviewText)
}

// ListBookReviews returns a page of reviews for a book, newest first.
func (s *Service) ListBookReviews(ctx context.Context, bookID int64, limit, offset int) ([]api.Review, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Reviews.ListBookReviews(ctx, bookID, limit, offset)
}

// DeleteBookReview removes the caller's own review.
func (s *Service) DeleteBookReview(ctx context.Context, callerID, reviewID int64) error {
	return s.repos.Reviews.DeleteBookReview(ctx, callerID, reviewID)
}

// ReviewAuthor creates the caller's review for an author.
func (s *Service) ReviewAuthor(ctx context.Context, callerID, authorID int64, req api.ReviewRequest) (*api.Review, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	author, err := s.repos.Catalog.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.ErrNotFound("author not found", nil)
	}
	if author.UserID != nil && *author.UserID == callerID {
		return nil, apperrors.ErrBadRequest("you cannot review yourself", nil)
	}

	return s.repos.Reviews.CreateAuthorReview(ctx, callerID, authorID, req.ReviewText)
}

// ListAuthorReviews returns a page of reviews for an author, newest first.
func (s *Service) ListAuthorReviews(ctx context.Context, authorID int64, limit, offset int) ([]api.Review, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Reviews.ListAuthorReviews(ctx, authorID, limit, offset)
}

// DeleteAuthorReview removes the caller's own author review.
func (s *Service) DeleteAuthorReview(ctx context.Context, callerID, reviewID int64) error {
	return s.repos.Reviews.DeleteAuthorReview(ctx, callerID, reviewID)
}

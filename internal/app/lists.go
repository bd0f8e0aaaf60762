package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// CreateList creates a custom list for the caller.
func (s *Service) CreateList(ctx context.Context, callerID int64, req api.CreateListRequest) (*api.List, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = constants.VisibilityPrivate
	}
	return s.repos.Lists.CreateCustomList(ctx, callerID, req.Title, visibility)
}

// requireOwnedList loads a list and checks the caller owns it.
func (s *Service) requireOwnedList(ctx context.Context, callerID, listID int64) (*api.List, error) {
	list, err := s.repos.Lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperrors.ErrNotFound("list not found", nil)
	}
	if list.UserID != callerID {
		return nil, apperrors.ErrNotFound("list not found", nil)
	}
	return list, nil
}

// GetMyLists returns the caller's lists in canonical order: the five
// defaults, then custom lists by creation time.
func (s *Service) GetMyLists(ctx context.Context, callerID int64) ([]api.List, error) {
	return s.repos.Lists.ListUserLists(ctx, callerID)
}

// GetList returns a list with its books. Owners always see their lists;
// everyone else only sees public ones.
func (s *Service) GetList(ctx context.Context, callerID, listID int64) (*api.List, []api.ListBookEntry, error) {
	list, err := s.repos.Lists.GetList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, apperrors.ErrNotFound("list not found", nil)
	}
	if list.UserID != callerID && list.Visibility != constants.VisibilityPublic {
		return nil, nil, apperrors.ErrNotFound("list not found", nil)
	}

	books, err := s.repos.Lists.ListBooksInList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	return list, books, nil
}

// GetPublicLists returns another user's public lists. The target must be an
// active, public account.
func (s *Service) GetPublicLists(ctx context.Context, targetID int64) ([]api.List, error) {
	target, err := s.repos.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.IsActive || !target.IsPublic {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	return s.repos.Lists.ListPublicLists(ctx, targetID)
}

// UpdateList renames a custom list and/or toggles visibility. Default lists
// keep their names; visibility may change on any owned list.
func (s *Service) UpdateList(ctx context.Context, callerID, listID int64, req api.UpdateListRequest) (*api.List, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Title == nil && req.Visibility == nil {
		return nil, apperrors.ErrBadRequest("no list fields to update", nil)
	}

	list, err := s.requireOwnedList(ctx, callerID, listID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && list.Name != constants.ListCustom {
		return nil, apperrors.ErrForbidden("default lists cannot be renamed", nil)
	}

	return s.repos.Lists.UpdateList(ctx, listID, req.Title, req.Visibility)
}

// DeleteList deletes a custom list. Default lists are permanent.
func (s *Service) DeleteList(ctx context.Context, callerID, listID int64) error {
	list, err := s.requireOwnedList(ctx, callerID, listID)
	if err != nil {
		return err
	}
	if list.Name != constants.ListCustom {
		return apperrors.ErrForbidden("default lists cannot be deleted", nil)
	}
	return s.repos.Lists.DeleteList(ctx, listID)
}

// AddBookToList adds an approved book to an owned list. Re-adding the same
// book refreshes its added_at and is not an error.
func (s *Service) AddBookToList(ctx context.Context, callerID, listID int64, req api.AddBookToListRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if _, err := s.requireOwnedList(ctx, callerID, listID); err != nil {
		return err
	}
	if _, err := s.requireApprovedBook(ctx, req.BookID); err != nil {
		return err
	}
	return s.repos.Lists.AddBookToList(ctx, listID, req.BookID)
}

// RemoveBookFromList removes a book from an owned list.
func (s *Service) RemoveBookFromList(ctx context.Context, callerID, listID, bookID int64) error {
	if _, err := s.requireOwnedList(ctx, callerID, listID); err != nil {
		return err
	}
	return s.repos.Lists.RemoveBookFromList(ctx, listID, bookID)
}

// GetListMembership reports, for one book, which of the caller's lists
// contain it.
func (s *Service) GetListMembership(ctx context.Context, callerID, bookID int64) ([]api.ListMembership, error) {
	return s.repos.Lists.ListMembershipForBook(ctx, callerID, bookID)
}

package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// displayName picks the name shown to other users.
func displayName(u *api.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// FollowUser makes caller follow targetID. Admin accounts do not
// participate in the social graph.
func (s *Service) FollowUser(ctx context.Context, caller *api.User, targetID int64) error {
	if caller.Role == constants.RoleAdmin {
		return apperrors.ErrForbidden("admin accounts cannot follow users", nil)
	}
	if caller.UserID == targetID {
		return apperrors.ErrBadRequest("you cannot follow yourself", nil)
	}

	target, err := s.repos.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive {
		return apperrors.ErrNotFound("user not found", nil)
	}

	if err := s.repos.Social.FollowUser(ctx, caller.UserID, targetID); err != nil {
		return err
	}

	s.notifier.NewFollower(ctx, targetID, displayName(caller))
	return nil
}

// UnfollowUser removes the follow edge; unfollowing someone never followed
// is a client error.
func (s *Service) UnfollowUser(ctx context.Context, caller *api.User, targetID int64) error {
	removed, err := s.repos.Social.UnfollowUser(ctx, caller.UserID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrBadRequest("you are not following this user", nil)
	}
	return nil
}

// IsFollowingUser reports whether caller follows targetID.
func (s *Service) IsFollowingUser(ctx context.Context, callerID, targetID int64) (bool, error) {
	return s.repos.Social.IsFollowingUser(ctx, callerID, targetID)
}

// FollowAuthor makes caller follow an author. Registered authors get
// notified through their linked user account.
func (s *Service) FollowAuthor(ctx context.Context, caller *api.User, authorID int64) error {
	if caller.Role == constants.RoleAdmin {
		return apperrors.ErrForbidden("admin accounts cannot follow authors", nil)
	}

	author, err := s.repos.Catalog.GetAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return apperrors.ErrNotFound("author not found", nil)
	}
	if author.UserID != nil && *author.UserID == caller.UserID {
		return apperrors.ErrBadRequest("you cannot follow yourself", nil)
	}

	if err := s.repos.Social.FollowAuthor(ctx, caller.UserID, authorID); err != nil {
		return err
	}

	if author.IsRegisteredAuthor && author.UserID != nil {
		s.notifier.NewFollower(ctx, *author.UserID, displayName(caller))
	}
	return nil
}

// UnfollowAuthor removes the author follow edge.
func (s *Service) UnfollowAuthor(ctx context.Context, caller *api.User, authorID int64) error {
	removed, err := s.repos.Social.UnfollowAuthor(ctx, caller.UserID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrBadRequest("you are not following this author", nil)
	}
	return nil
}

// IsFollowingAuthor reports whether caller follows the author.
func (s *Service) IsFollowingAuthor(ctx context.Context, callerID, authorID int64) (bool, error) {
	return s.repos.Social.IsFollowingAuthor(ctx, callerID, authorID)
}

// ListFollowers returns who follows userID.
func (s *Service) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Social.ListFollowers(ctx, userID, limit, offset)
}

// ListFollowing returns who userID follows.
func (s *Service) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Social.ListFollowing(ctx, userID, limit, offset)
}

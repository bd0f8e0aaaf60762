package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/auth"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// ResolveUser maps gateway claims to the local user row. Unknown subjects
// are unauthorized: the account row is provisioned at sign-up confirmation,
// so a missing row means the token does not belong to a bookarc account.
func (s *Service) ResolveUser(ctx context.Context, claims *auth.Claims) (*api.User, error) {
	user, err := s.repos.Users.GetUserBySub(ctx, claims.Sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized("no account for this identity", nil)
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden("account is disabled", nil)
	}
	return user, nil
}

// ProvisionUser creates the local account row and its five default lists.
// Called from the post-confirmation trigger; idempotent so a retried trigger
// never fails.
func (s *Service) ProvisionUser(ctx context.Context, sub, email, username string) (*api.User, error) {
	existing, err := s.repos.Users.GetUserBySub(ctx, sub)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		user := &api.User{
			CognitoSub: sub,
			Username:   username,
			Email:      email,
			Role:       constants.RoleNormal,
			IsActive:   true,
			IsPublic:   true,
		}
		id, err := s.repos.Users.CreateUser(ctx, user)
		if err != nil {
			if apperrors.GetStatusCode(err) == http.StatusConflict {
				// Concurrent trigger delivery; the other invocation won.
				existing, err = s.repos.Users.GetUserBySub(ctx, sub)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		} else {
			user.UserID = id
			existing = user
		}
	}

	if err := s.repos.Lists.CreateDefaultLists(ctx, existing.UserID); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetProfile returns the caller's own profile.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*api.User, error) {
	user, err := s.repos.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	return user, nil
}

// GetPublicUser returns another user's profile. Inactive or private accounts
// are indistinguishable from missing ones.
func (s *Service) GetPublicUser(ctx context.Context, callerID, targetID int64) (*api.User, error) {
	user, err := s.repos.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil || (!user.IsActive && callerID != targetID) {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	if !user.IsPublic && callerID != targetID {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	// Contact details stay private.
	user.Email = ""
	return user, nil
}

// UpdateProfile applies partial updates to the caller's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req api.UpdateProfileRequest) (*api.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.DisplayName == nil && req.Bio == nil && req.IsPublic == nil {
		return nil, apperrors.ErrBadRequest("no profile fields to update", nil)
	}

	user, err := s.repos.Users.UpdateProfile(ctx, userID, req.DisplayName, req.Bio, req.IsPublic)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	return user, nil
}

// ChangePassword changes the caller's identity-provider password and sends a
// confirmation notification.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req api.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if s.identity == nil {
		return apperrors.ErrServiceUnavailable("password changes are not configured", nil)
	}

	if err := s.identity.ChangePassword(ctx, req.AccessToken, req.PreviousPassword, req.ProposedPassword); err != nil {
		return err
	}

	s.notifier.PasswordChanged(ctx, userID)
	s.Logger.Info("password changed", "user_id", userID)
	return nil
}

// DeleteAccount removes the caller's account. Dependent rows (lists,
// ratings, reviews, follows, notifications) cascade at the database level.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.repos.Users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.Logger.Info("account deleted", "user_id", userID)
	return nil
}

// SearchUsers finds public active users by name fragment.
func (s *Service) SearchUsers(ctx context.Context, query string, limit, offset int) ([]api.User, int, error) {
	if query == "" {
		return nil, 0, apperrors.ErrBadRequest("search query is required", nil)
	}
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	users, total, err := s.repos.Users.SearchUsers(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].Email = ""
	}
	return users, total, nil
}

// GetUserStats aggregates the caller's activity counters.
func (s *Service) GetUserStats(ctx context.Context, userID int64) (*api.UserStats, error) {
	stats, err := s.repos.Users.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, apperrors.ErrNotFound(fmt.Sprintf("no stats for user %d", userID), nil)
	}
	return stats, nil
}

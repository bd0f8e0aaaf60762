package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/auth"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
	"github.com/bookarc/bookarc/internal/testutil"
)

func TestResolveUser(t *testing.T) {
	tests := []struct {
		name       string
		user       *api.User
		repoErr    error
		wantStatus int
	}{
		{
			name: "active user resolves",
			user: testutil.NewUserBuilder().Build(),
		},
		{
			name:       "unknown subject is unauthorized",
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "disabled account is forbidden",
			user:       testutil.NewUserBuilder().Disabled().Build(),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "repository error propagates",
			repoErr:    apperrors.ErrDatabaseError("query failed", errors.New("boom")),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(Repositories{
				Users: &mockUserRepository{
					getUserBySubFunc: func(_ context.Context, sub string) (*api.User, error) {
						assert.Equal(t, "sub-test-1", sub)
						return tt.user, tt.repoErr
					},
				},
			})

			user, err := svc.ResolveUser(testutil.TestContext(), &auth.Claims{Sub: "sub-test-1"})
			if tt.wantStatus != 0 {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.UserID, user.UserID)
		})
	}
}

func TestProvisionUserCreatesAccountAndDefaultLists(t *testing.T) {
	var createdUser *api.User
	var defaultListsFor int64

	users := &mockUserRepository{
		getUserBySubFunc: func(_ context.Context, _ string) (*api.User, error) {
			return nil, nil
		},
		createUserFunc: func(_ context.Context, user *api.User) (int64, error) {
			createdUser = user
			return 42, nil
		},
	}
	lists := &mockListRepository{
		createDefaultListsFunc: func(_ context.Context, userID int64) error {
			defaultListsFor = userID
			return nil
		},
	}
	svc := newTestService(Repositories{Users: users, Lists: lists})

	user, err := svc.ProvisionUser(testutil.TestContext(), "sub-new", "new@example.com", "newreader")
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.UserID)
	require.NotNil(t, createdUser)
	assert.Equal(t, constants.RoleNormal, createdUser.Role)
	assert.True(t, createdUser.IsActive)
	assert.True(t, createdUser.IsPublic)
	assert.Equal(t, int64(42), defaultListsFor)
}

func TestProvisionUserIsIdempotent(t *testing.T) {
	existing := testutil.NewUserBuilder().WithID(7).Build()
	created := false
	listsProvisioned := false

	svc := newTestService(Repositories{
		Users: &mockUserRepository{
			getUserBySubFunc: func(_ context.Context, _ string) (*api.User, error) {
				return existing, nil
			},
			createUserFunc: func(_ context.Context, _ *api.User) (int64, error) {
				created = true
				return 0, nil
			},
		},
		Lists: &mockListRepository{
			createDefaultListsFunc: func(_ context.Context, userID int64) error {
				assert.Equal(t, int64(7), userID)
				listsProvisioned = true
				return nil
			},
		},
	})

	user, err := svc.ProvisionUser(testutil.TestContext(), existing.CognitoSub, existing.Email, existing.Username)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.UserID)
	assert.False(t, created, "existing accounts must not be recreated")
	assert.True(t, listsProvisioned, "default lists are always reconciled")
}

func TestProvisionUserConcurrentTrigger(t *testing.T) {
	// A duplicate insert means another trigger invocation created the row
	// between our read and write; the retry must pick up that row.
	winner := testutil.NewUserBuilder().WithID(9).Build()
	calls := 0

	svc := newTestService(Repositories{
		Users: &mockUserRepository{
			getUserBySubFunc: func(_ context.Context, _ string) (*api.User, error) {
				calls++
				if calls == 1 {
					return nil, nil
				}
				return winner, nil
			},
			createUserFunc: func(_ context.Context, _ *api.User) (int64, error) {
				return 0, apperrors.ErrConflict("user already exists", nil)
			},
		},
	})

	user, err := svc.ProvisionUser(testutil.TestContext(), winner.CognitoSub, winner.Email, winner.Username)
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.UserID)
	assert.Equal(t, 2, calls)
}

func TestGetPublicUser(t *testing.T) {
	tests := []struct {
		name     string
		target   *api.User
		callerID int64
		wantErr  bool
	}{
		{
			name:     "public active profile is visible",
			target:   testutil.NewUserBuilder().WithID(2).Build(),
			callerID: 1,
		},
		{
			name:     "private profile is hidden from others",
			target:   testutil.NewUserBuilder().WithID(2).Private().Build(),
			callerID: 1,
			wantErr:  true,
		},
		{
			name:     "private profile is visible to its owner",
			target:   testutil.NewUserBuilder().WithID(2).Private().Build(),
			callerID: 2,
		},
		{
			name:     "disabled profile is hidden",
			target:   testutil.NewUserBuilder().WithID(2).Disabled().Build(),
			callerID: 1,
			wantErr:  true,
		},
		{
			name:     "missing user",
			target:   nil,
			callerID: 1,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(Repositories{
				Users: &mockUserRepository{
					getUserByIDFunc: func(_ context.Context, _ int64) (*api.User, error) {
						return tt.target, nil
					},
				},
			})

			user, err := svc.GetPublicUser(testutil.TestContext(), tt.callerID, 2)
			if tt.wantErr {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, http.StatusNotFound)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, user.Email, "email must never leak to other users")
		})
	}
}

func TestUpdateProfileRequiresFields(t *testing.T) {
	svc := newTestService(Repositories{})

	_, err := svc.UpdateProfile(testutil.TestContext(), 1, api.UpdateProfileRequest{})
	require.Error(t, err)
	testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
}

func TestChangePasswordUnconfigured(t *testing.T) {
	svc := newTestService(Repositories{})

	err := svc.ChangePassword(testutil.TestContext(), 1, api.ChangePasswordRequest{
		AccessToken:      "token",
		PreviousPassword: "oldpassword",
		ProposedPassword: "newpassword",
	})
	require.Error(t, err)
	testutil.AssertAppErrorStatus(t, err, http.StatusServiceUnavailable)
}

func TestSearchUsers(t *testing.T) {
	t.Run("empty query is rejected", func(t *testing.T) {
		svc := newTestService(Repositories{})
		_, _, err := svc.SearchUsers(testutil.TestContext(), "", 10, 0)
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	})

	t.Run("emails are stripped from results", func(t *testing.T) {
		svc := newTestService(Repositories{
			Users: &mockUserRepository{
				searchUsersFunc: func(_ context.Context, query string, limit, offset int) ([]api.User, int, error) {
					assert.Equal(t, "rea", query)
					assert.Equal(t, constants.DefaultPageSize, limit)
					return []api.User{*testutil.NewUserBuilder().Build()}, 1, nil
				},
			},
		})

		users, total, err := svc.SearchUsers(testutil.TestContext(), "rea", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, users, 1)
		assert.Empty(t, users[0].Email)
	})
}

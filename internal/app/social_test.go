package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
	"github.com/bookarc/bookarc/internal/testutil"
)

func TestFollowUser(t *testing.T) {
	tests := []struct {
		name       string
		caller     *api.User
		targetID   int64
		target     *api.User
		wantStatus int
	}{
		{
			name:     "follow notifies target",
			caller:   testutil.NewUserBuilder().WithID(1).Build(),
			targetID: 2,
			target:   testutil.NewUserBuilder().WithID(2).Build(),
		},
		{
			name:       "admins cannot follow",
			caller:     testutil.NewUserBuilder().WithID(1).AsAdmin().Build(),
			targetID:   2,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "self follow is rejected",
			caller:     testutil.NewUserBuilder().WithID(1).Build(),
			targetID:   1,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "disabled target looks missing",
			caller:     testutil.NewUserBuilder().WithID(1).Build(),
			targetID:   2,
			target:     testutil.NewUserBuilder().WithID(2).Disabled().Build(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown target",
			caller:     testutil.NewUserBuilder().WithID(1).Build(),
			targetID:   2,
			target:     nil,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := &mockNotificationRepository{}
			svc := newTestService(Repositories{
				Users: &mockUserRepository{
					getUserByIDFunc: func(_ context.Context, _ int64) (*api.User, error) {
						return tt.target, nil
					},
				},
				Notifications: notifications,
			})

			err := svc.FollowUser(testutil.TestContext(), tt.caller, tt.targetID)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, tt.wantStatus)
				assert.Empty(t, notifications.created)
				return
			}
			require.NoError(t, err)
			require.Len(t, notifications.created, 1)
			assert.Equal(t, tt.targetID, notifications.created[0].UserID)
			assert.Equal(t, constants.NotificationNewFollower, notifications.created[0].Type)
		})
	}
}

func TestFollowUserDuplicateEdge(t *testing.T) {
	svc := newTestService(Repositories{
		Users: &mockUserRepository{
			getUserByIDFunc: func(_ context.Context, id int64) (*api.User, error) {
				return testutil.NewUserBuilder().WithID(id).Build(), nil
			},
		},
		Social: &mockSocialRepository{
			followUserFunc: func(_ context.Context, _, _ int64) error {
				return apperrors.ErrConflict("already following this user", nil)
			},
		},
	})

	err := svc.FollowUser(testutil.TestContext(), testutil.NewUserBuilder().WithID(1).Build(), 2)
	require.Error(t, err)
	testutil.AssertAppErrorStatus(t, err, http.StatusConflict)
}

func TestUnfollowUser(t *testing.T) {
	t.Run("removes the edge", func(t *testing.T) {
		svc := newTestService(Repositories{})
		err := svc.UnfollowUser(testutil.TestContext(), testutil.NewUserBuilder().WithID(1).Build(), 2)
		require.NoError(t, err)
	})

	t.Run("not following is a client error", func(t *testing.T) {
		svc := newTestService(Repositories{
			Social: &mockSocialRepository{
				unfollowUserFunc: func(_ context.Context, _, _ int64) (bool, error) {
					return false, nil
				},
			},
		})
		err := svc.UnfollowUser(testutil.TestContext(), testutil.NewUserBuilder().WithID(1).Build(), 2)
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	})
}

func TestFollowAuthor(t *testing.T) {
	linkedUserID := int64(8)

	tests := []struct {
		name       string
		caller     *api.User
		author     *api.Author
		wantStatus int
		wantNotify bool
	}{
		{
			name:   "unregistered author gets no notification",
			caller: testutil.NewUserBuilder().WithID(1).Build(),
			author: &api.Author{AuthorID: 3, Name: "Jane Roe"},
		},
		{
			name:   "registered author is notified",
			caller: testutil.NewUserBuilder().WithID(1).Build(),
			author: &api.Author{
				AuthorID: 3, Name: "Jane Roe",
				IsRegisteredAuthor: true, UserID: &linkedUserID,
			},
			wantNotify: true,
		},
		{
			name:       "admins cannot follow authors",
			caller:     testutil.NewUserBuilder().WithID(1).AsAdmin().Build(),
			author:     &api.Author{AuthorID: 3, Name: "Jane Roe"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "following your own author record is rejected",
			caller:     testutil.NewUserBuilder().WithID(linkedUserID).Build(),
			author:     &api.Author{AuthorID: 3, Name: "Jane Roe", UserID: &linkedUserID},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing author",
			caller:     testutil.NewUserBuilder().WithID(1).Build(),
			author:     nil,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := &mockNotificationRepository{}
			svc := newTestService(Repositories{
				Catalog: &mockCatalogRepository{
					getAuthorFunc: func(_ context.Context, _ int64) (*api.Author, error) {
						return tt.author, nil
					},
				},
				Notifications: notifications,
			})

			err := svc.FollowAuthor(testutil.TestContext(), tt.caller, 3)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			if tt.wantNotify {
				require.Len(t, notifications.created, 1)
				assert.Equal(t, linkedUserID, notifications.created[0].UserID)
			} else {
				assert.Empty(t, notifications.created)
			}
		})
	}
}

func TestListFollowersClampsPaging(t *testing.T) {
	svc := newTestService(Repositories{
		Social: &mockSocialRepository{
			listFollowersFunc: func(_ context.Context, _ int64, limit, offset int) ([]api.User, int, error) {
				assert.Equal(t, constants.MaxPageSize, limit)
				assert.Equal(t, 0, offset)
				return nil, 0, nil
			},
		},
	})

	_, _, err := svc.ListFollowers(testutil.TestContext(), 1, 500, -3)
	require.NoError(t, err)
}

package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
)

// ListNotifications returns a page of the caller's notifications plus total
// and unread counts.
func (s *Service) ListNotifications(ctx context.Context, callerID int64, unreadOnly bool, limit, offset int) ([]api.Notification, int, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Notifications.ListNotifications(ctx, callerID, unreadOnly, limit, offset)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (s *Service) MarkNotificationRead(ctx context.Context, callerID, notificationID int64) error {
	return s.repos.Notifications.MarkRead(ctx, callerID, notificationID)
}

// MarkAllNotificationsRead marks everything unread as read and returns the
// affected count. A second call right after returns zero.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, callerID int64) (int64, error) {
	return s.repos.Notifications.MarkAllRead(ctx, callerID)
}

// DeleteNotification removes one of the caller's notifications.
func (s *Service) DeleteNotification(ctx context.Context, callerID, notificationID int64) error {
	return s.repos.Notifications.DeleteNotification(ctx, callerID, notificationID)
}

// GetNotificationPreferences returns the caller's preferences, defaulting to
// everything enabled when no row exists.
func (s *Service) GetNotificationPreferences(ctx context.Context, callerID int64) (*api.NotificationPreferences, error) {
	prefs, err := s.repos.Notifications.GetPreferences(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &api.NotificationPreferences{
			UserID:          callerID,
			InAppEnabled:    true,
			FollowEnabled:   true,
			RatingEnabled:   true,
			ApprovalEnabled: true,
		}, nil
	}
	return prefs, nil
}

// UpdateNotificationPreferences upserts the caller's preference row.
func (s *Service) UpdateNotificationPreferences(ctx context.Context, callerID int64, req api.UpdatePreferencesRequest) (*api.NotificationPreferences, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.repos.Notifications.UpsertPreferences(ctx, callerID,
		req.InAppEnabled, req.FollowEnabled, req.RatingEnabled, req.ApprovalEnabled)
}

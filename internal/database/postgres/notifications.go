package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// NotificationRepo implements database.NotificationRepository on PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepo creates a notification repository backed by the given pool.
func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

var _ database.NotificationRepository = (*NotificationRepo)(nil)

// CreateNotification appends one notification row.
func (r *NotificationRepo) CreateNotification(ctx context.Context, n *api.Notification) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, notification_type, audience_type)
		VALUES ($1, $2, $3, $4)
		RETURNING notification_id
	`, n.UserID, n.Message, n.Type, n.AudienceType).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrNotFound("user not found", err)
		}
		return 0, dbErr("create notification", err)
	}
	return id, nil
}

// CreateForFollowers fans one message out to every follower of the author
// linked to authorUserID. Followers who disabled the category are skipped.
// Returns the number of rows inserted.
func (r *NotificationRepo) CreateForFollowers(ctx context.Context, authorUserID int64, message, notificationType, audienceType string) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, message, notification_type, audience_type)
		SELECT f.user_id, $2, $3, $4
		FROM user_follow_author f
		JOIN authors a ON f.author_id = a.author_id
		LEFT JOIN notification_preferences p ON p.user_id = f.user_id
		WHERE a.user_id = $1
		  AND a.is_registered_author
		  AND COALESCE(p.in_app_enabled, TRUE)
	`, authorUserID, message, notificationType, audienceType)
	if err != nil {
		return 0, dbErr("fan out notification", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListNotifications returns a page of the user's notifications, newest first,
// along with the total and unread counts for the same filter scope.
func (r *NotificationRepo) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]api.Notification, int, int, error) {
	var total, unread int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read)
		FROM notifications WHERE user_id = $1
	`, userID).Scan(&total, &unread)
	if err != nil {
		return nil, 0, 0, dbErr("count notifications", err)
	}

	query := `
		SELECT notification_id, user_id, message, notification_type,
		       audience_type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND NOT is_read`
		total = unread
	}
	query += ` ORDER BY created_at DESC, notification_id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, 0, dbErr("list notifications", err)
	}
	defer rows.Close()

	var out []api.Notification
	for rows.Next() {
		n := api.Notification{}
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.Message,
			&n.Type, &n.AudienceType, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, 0, dbErr("scan notifications", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, dbErr("scan notifications", err)
	}
	return out, total, unread, nil
}

// MarkRead marks one of the user's notifications as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE notification_id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return dbErr("mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("notification not found", nil)
	}
	return nil
}

// MarkAllRead marks every unread notification as read and returns the count.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND NOT is_read
	`, userID)
	if err != nil {
		return 0, dbErr("mark all notifications read", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteNotification removes one of the user's notifications.
func (r *NotificationRepo) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE notification_id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return dbErr("delete notification", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("notification not found", nil)
	}
	return nil
}

// GetPreferences returns the user's preference row, or nil when absent.
func (r *NotificationRepo) GetPreferences(ctx context.Context, userID int64) (*api.NotificationPreferences, error) {
	p := api.NotificationPreferences{}
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, in_app_enabled, follow_enabled, rating_enabled,
		       approval_enabled, updated_at
		FROM notification_preferences WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.InAppEnabled, &p.FollowEnabled,
		&p.RatingEnabled, &p.ApprovalEnabled, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbErr("get notification preferences", err)
	}
	return &p, nil
}

// UpsertPreferences creates or partially updates the preference row. Nil
// fields keep their current (or default TRUE) value.
func (r *NotificationRepo) UpsertPreferences(ctx context.Context, userID int64, inApp, follow, rating, approval *bool) (*api.NotificationPreferences, error) {
	p := api.NotificationPreferences{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notification_preferences
			(user_id, in_app_enabled, follow_enabled, rating_enabled, approval_enabled)
		VALUES ($1, COALESCE($2, TRUE), COALESCE($3, TRUE), COALESCE($4, TRUE), COALESCE($5, TRUE))
		ON CONFLICT (user_id) DO UPDATE SET
			in_app_enabled   = COALESCE($2, notification_preferences.in_app_enabled),
			follow_enabled   = COALESCE($3, notification_preferences.follow_enabled),
			rating_enabled   = COALESCE($4, notification_preferences.rating_enabled),
			approval_enabled = COALESCE($5, notification_preferences.approval_enabled),
			updated_at       = NOW()
		RETURNING user_id, in_app_enabled, follow_enabled, rating_enabled,
		          approval_enabled, updated_at
	`, userID, inApp, follow, rating, approval).Scan(&p.UserID, &p.InAppEnabled,
		&p.FollowEnabled, &p.RatingEnabled, &p.ApprovalEnabled, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound("user not found", err)
		}
		return nil, dbErr("upsert notification preferences", err)
	}
	return &p, nil
}

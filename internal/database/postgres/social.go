package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// SocialRepo implements database.SocialRepository on PostgreSQL.
// The primary keys on the edge tables double as idempotency guards.
type SocialRepo struct {
	pool *pgxpool.Pool
}

// NewSocialRepo creates a social graph repository backed by the given pool.
func NewSocialRepo(pool *pgxpool.Pool) *SocialRepo {
	return &SocialRepo{pool: pool}
}

var _ database.SocialRepository = (*SocialRepo)(nil)

// FollowUser inserts the edge; a duplicate returns a conflict.
func (r *SocialRepo) FollowUser(ctx context.Context, followerID, followingID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_follow_user (follower_id, following_id)
		VALUES ($1, $2)
	`, followerID, followingID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict("already following this user", err)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound("user not found", err)
		}
		return dbErr("follow user", err)
	}
	return nil
}

// UnfollowUser removes the edge; returns false when no edge existed.
func (r *SocialRepo) UnfollowUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_follow_user WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return false, dbErr("unfollow user", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsFollowingUser reports whether the edge exists.
func (r *SocialRepo) IsFollowingUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_follow_user
			WHERE follower_id = $1 AND following_id = $2
		)
	`, followerID, followingID).Scan(&exists)
	if err != nil {
		return false, dbErr("check follow status", err)
	}
	return exists, nil
}

// FollowAuthor inserts the edge; a duplicate returns a conflict.
func (r *SocialRepo) FollowAuthor(ctx context.Context, userID, authorID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_follow_author (user_id, author_id)
		VALUES ($1, $2)
	`, userID, authorID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict("already following this author", err)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound("author not found", err)
		}
		return dbErr("follow author", err)
	}
	return nil
}

// UnfollowAuthor removes the edge; returns false when no edge existed.
func (r *SocialRepo) UnfollowAuthor(ctx context.Context, userID, authorID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_follow_author WHERE user_id = $1 AND author_id = $2`,
		userID, authorID)
	if err != nil {
		return false, dbErr("unfollow author", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsFollowingAuthor reports whether the edge exists.
func (r *SocialRepo) IsFollowingAuthor(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_follow_author
			WHERE user_id = $1 AND author_id = $2
		)
	`, userID, authorID).Scan(&exists)
	if err != nil {
		return false, dbErr("check author follow status", err)
	}
	return exists, nil
}

func (r *SocialRepo) listEdgeUsers(ctx context.Context, countQuery, listQuery string, userID int64, limit, offset int) ([]api.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dbErr("count follow edges", err)
	}

	rows, err := r.pool.Query(ctx, listQuery, userID, limit, offset)
	if err != nil {
		return nil, 0, dbErr("list follow edges", err)
	}
	defer rows.Close()

	var users []api.User
	for rows.Next() {
		u := api.User{}
		if err := rows.Scan(&u.UserID, &u.Username, &u.DisplayName,
			&u.ProfilePictureURL, &u.Role); err != nil {
			return nil, 0, dbErr("scan follow edges", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("scan follow edges", err)
	}
	return users, total, nil
}

// ListFollowers returns the active users following userID.
func (r *SocialRepo) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error) {
	return r.listEdgeUsers(ctx, `
		SELECT COUNT(*) FROM user_follow_user f
		JOIN users u ON f.follower_id = u.user_id
		WHERE f.following_id = $1 AND u.is_active
	`, `
		SELECT u.user_id, u.username,
		       COALESCE(NULLIF(u.display_name, ''), u.username),
		       u.profile_picture_url, u.role
		FROM user_follow_user f
		JOIN users u ON f.follower_id = u.user_id
		WHERE f.following_id = $1 AND u.is_active
		ORDER BY f.followed_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

// ListFollowing returns the active users userID follows.
func (r *SocialRepo) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error) {
	return r.listEdgeUsers(ctx, `
		SELECT COUNT(*) FROM user_follow_user f
		JOIN users u ON f.following_id = u.user_id
		WHERE f.follower_id = $1 AND u.is_active
	`, `
		SELECT u.user_id, u.username,
		       COALESCE(NULLIF(u.display_name, ''), u.username),
		       u.profile_picture_url, u.role
		FROM user_follow_user f
		JOIN users u ON f.following_id = u.user_id
		WHERE f.follower_id = $1 AND u.is_active
		ORDER BY f.followed_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

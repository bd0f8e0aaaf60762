package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

const userColumns = `user_id, cognito_sub, username, display_name, email, bio,
	profile_picture_url, role, verification_status, is_active, is_public, join_date`

// UserRepo implements database.UserRepository on PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a user repository backed by the given pool.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

var _ database.UserRepository = (*UserRepo)(nil)

func scanUser(row pgx.Row) (*api.User, error) {
	u := &api.User{}
	err := row.Scan(
		&u.UserID, &u.CognitoSub, &u.Username, &u.DisplayName, &u.Email, &u.Bio,
		&u.ProfilePictureURL, &u.Role, &u.VerificationStatus, &u.IsActive,
		&u.IsPublic, &u.JoinDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// CreateUser stores a new user row and returns its generated id.
func (r *UserRepo) CreateUser(ctx context.Context, user *api.User) (int64, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (cognito_sub, username, display_name, email, role, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, join_date
	`, user.CognitoSub, user.Username, user.DisplayName, user.Email, user.Role, user.IsPublic)

	if err := row.Scan(&user.UserID, &user.JoinDate); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrConflict("user already exists", err)
		}
		return 0, dbErr("create user", err)
	}
	return user.UserID, nil
}

// GetUserBySub retrieves a user by their identity-provider subject.
// Returns nil when no row matches.
func (r *UserRepo) GetUserBySub(ctx context.Context, sub string) (*api.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE cognito_sub = $1`, sub)
	u, err := scanUser(row)
	if err != nil {
		return nil, dbErr("get user by subject", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username. Returns nil when no row
// matches.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, dbErr("get user by username", err)
	}
	return u, nil
}

// GetUserByID retrieves a user by id. Returns nil when no row matches.
func (r *UserRepo) GetUserByID(ctx context.Context, userID int64) (*api.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, dbErr("get user by id", err)
	}
	return u, nil
}

// UpdateProfile applies partial updates and returns the updated row.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID int64, displayName, bio *string, isPublic *bool) (*api.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			bio          = COALESCE($3, bio),
			is_public    = COALESCE($4, is_public)
		WHERE user_id = $1
		RETURNING `+userColumns,
		userID, displayName, bio, isPublic)

	u, err := scanUser(row)
	if err != nil {
		return nil, dbErr("update profile", err)
	}
	if u == nil {
		return nil, apperrors.ErrNotFound("user not found", nil)
	}
	return u, nil
}

// UpdateProfilePicture records an uploaded picture's public URL.
func (r *UserRepo) UpdateProfilePicture(ctx context.Context, userID int64, url string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_picture_url = $2 WHERE user_id = $1`, userID, url)
	if err != nil {
		return dbErr("update profile picture", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("user not found", nil)
	}
	return nil
}

// DeleteUser removes the user row; dependent rows cascade.
func (r *UserRepo) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return dbErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("user not found", nil)
	}
	return nil
}

// SearchUsers finds active public users by username or display name.
func (r *UserRepo) SearchUsers(ctx context.Context, query string, limit, offset int) ([]api.User, int, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE is_active AND is_public
		  AND (LOWER(username) LIKE $1 OR LOWER(display_name) LIKE $1)
	`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, dbErr("count user search", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE is_active AND is_public
		  AND (LOWER(username) LIKE $1 OR LOWER(display_name) LIKE $1)
		ORDER BY username
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, dbErr("search users", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, dbErr("scan user search", err)
	}
	return users, total, nil
}

// ListUsers returns users for the admin dashboard.
func (r *UserRepo) ListUsers(ctx context.Context, role string, activeOnly *bool, limit, offset int) ([]api.User, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	if role != "" {
		args = append(args, role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if activeOnly != nil {
		args = append(args, *activeOnly)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count users", err)
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM users WHERE %s ORDER BY join_date DESC LIMIT $%d OFFSET $%d`,
		userColumns, cond, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, dbErr("list users", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, dbErr("scan users", err)
	}
	return users, total, nil
}

func collectUsers(rows pgx.Rows) ([]api.User, error) {
	var users []api.User
	for rows.Next() {
		u := api.User{}
		if err := rows.Scan(
			&u.UserID, &u.CognitoSub, &u.Username, &u.DisplayName, &u.Email, &u.Bio,
			&u.ProfilePictureURL, &u.Role, &u.VerificationStatus, &u.IsActive,
			&u.IsPublic, &u.JoinDate,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetActive toggles the soft-disable flag.
func (r *UserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $2 WHERE user_id = $1`, userID, active)
	if err != nil {
		return dbErr("toggle user status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("user not found", nil)
	}
	return nil
}

// SetRoleAndVerification updates role and verification status together.
func (r *UserRepo) SetRoleAndVerification(ctx context.Context, userID int64, role, verificationStatus string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET role = $2, verification_status = $3 WHERE user_id = $1`,
		userID, role, verificationStatus)
	if err != nil {
		return dbErr("update role", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("user not found", nil)
	}
	return nil
}

// GetUserStats aggregates the user's activity counters.
func (r *UserRepo) GetUserStats(ctx context.Context, userID int64) (*api.UserStats, error) {
	stats := &api.UserStats{UserID: userID}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(DISTINCT lb.book_id)
			   FROM list_books lb
			   JOIN lists l ON lb.list_id = l.list_id
			  WHERE l.user_id = $1 AND l.name = 'Completed'),
			(SELECT COUNT(*) FROM ratings WHERE user_id = $1) +
			(SELECT COUNT(*) FROM author_ratings WHERE user_id = $1),
			(SELECT COUNT(*) FROM reviews WHERE user_id = $1) +
			(SELECT COUNT(*) FROM author_reviews WHERE user_id = $1),
			(SELECT COUNT(*) FROM user_follow_user WHERE following_id = $1),
			(SELECT COUNT(*) FROM user_follow_user WHERE follower_id = $1),
			(SELECT COUNT(*) FROM lists WHERE user_id = $1)
	`, userID).Scan(
		&stats.BooksCompleted, &stats.RatingsGiven, &stats.ReviewsWritten,
		&stats.Followers, &stats.Following, &stats.Lists,
	)
	if err != nil {
		return nil, dbErr("get user stats", err)
	}
	return stats, nil
}

// GetAdminStats aggregates platform-wide counters.
func (r *UserRepo) GetAdminStats(ctx context.Context) (*api.AdminStats, error) {
	stats := &api.AdminStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM authors),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM books WHERE approval_status = 'pending'),
			(SELECT COUNT(*) FROM ratings) + (SELECT COUNT(*) FROM author_ratings),
			(SELECT COUNT(*) FROM reviews) + (SELECT COUNT(*) FROM author_reviews),
			(SELECT COUNT(*) FROM author_verification_requests WHERE status = 'pending')
	`).Scan(
		&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalAuthors, &stats.TotalBooks,
		&stats.PendingBooks, &stats.TotalRatings, &stats.TotalReviews,
		&stats.PendingVerifications,
	)
	if err != nil {
		return nil, dbErr("get admin stats", err)
	}
	return stats, nil
}

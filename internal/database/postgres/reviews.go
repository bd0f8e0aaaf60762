package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// ReviewRepo implements database.ReviewRepository on PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

// NewReviewRepo creates a review repository backed by the given pool.
func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

var _ database.ReviewRepository = (*ReviewRepo)(nil)

// CreateBookReview inserts a review; a second review for the same pair
// returns a conflict.
func (r *ReviewRepo) CreateBookReview(ctx context.Context, userID, bookID int64, text string) (*api.Review, error) {
	rv := &api.Review{UserID: userID, BookID: bookID, ReviewText: text}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, book_id, review_text)
		VALUES ($1, $2, $3)
		RETURNING review_id, created_at
	`, userID, bookID, text).Scan(&rv.ReviewID, &rv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict("you have already reviewed this book", err)
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound("book not found", err)
		}
		return nil, dbErr("create book review", err)
	}
	return rv, nil
}

// ListBookReviews returns a page of reviews, newest first.
func (r *ReviewRepo) ListBookReviews(ctx context.Context, bookID int64, limit, offset int) ([]api.Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, dbErr("count book reviews", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rv.review_id, rv.user_id, rv.book_id, rv.review_text, rv.created_at,
		       u.username, COALESCE(NULLIF(u.display_name, ''), u.username)
		FROM reviews rv
		JOIN users u ON rv.user_id = u.user_id
		WHERE rv.book_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`, bookID, limit, offset)
	if err != nil {
		return nil, 0, dbErr("list book reviews", err)
	}
	defer rows.Close()

	reviews, err := collectBookReviews(rows)
	if err != nil {
		return nil, 0, dbErr("scan book reviews", err)
	}
	return reviews, total, nil
}

func collectBookReviews(rows pgx.Rows) ([]api.Review, error) {
	var reviews []api.Review
	for rows.Next() {
		rv := api.Review{}
		if err := rows.Scan(&rv.ReviewID, &rv.UserID, &rv.BookID, &rv.ReviewText,
			&rv.CreatedAt, &rv.Username, &rv.DisplayName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// DeleteBookReview removes the caller's own review.
func (r *ReviewRepo) DeleteBookReview(ctx context.Context, userID, reviewID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM reviews WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return dbErr("delete book review", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("review not found", nil)
	}
	return nil
}

// CreateAuthorReview inserts a review; a second review for the same pair
// returns a conflict.
func (r *ReviewRepo) CreateAuthorReview(ctx context.Context, userID, authorID int64, text string) (*api.Review, error) {
	rv := &api.Review{UserID: userID, AuthorID: authorID, ReviewText: text}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO author_reviews (user_id, author_id, review_text)
		VALUES ($1, $2, $3)
		RETURNING review_id, created_at
	`, userID, authorID, text).Scan(&rv.ReviewID, &rv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict("you have already reviewed this author", err)
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound("author not found", err)
		}
		return nil, dbErr("create author review", err)
	}
	return rv, nil
}

// ListAuthorReviews returns a page of reviews, newest first.
func (r *ReviewRepo) ListAuthorReviews(ctx context.Context, authorID int64, limit, offset int) ([]api.Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM author_reviews WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, dbErr("count author reviews", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rv.review_id, rv.user_id, rv.author_id, rv.review_text, rv.created_at,
		       u.username, COALESCE(NULLIF(u.display_name, ''), u.username)
		FROM author_reviews rv
		JOIN users u ON rv.user_id = u.user_id
		WHERE rv.author_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, 0, dbErr("list author reviews", err)
	}
	defer rows.Close()

	var reviews []api.Review
	for rows.Next() {
		rv := api.Review{}
		if err := rows.Scan(&rv.ReviewID, &rv.UserID, &rv.AuthorID, &rv.ReviewText,
			&rv.CreatedAt, &rv.Username, &rv.DisplayName); err != nil {
			return nil, 0, dbErr("scan author reviews", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("scan author reviews", err)
	}
	return reviews, total, nil
}

// DeleteAuthorReview removes the caller's own review.
func (r *ReviewRepo) DeleteAuthorReview(ctx context.Context, userID, reviewID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM author_reviews WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return dbErr("delete author review", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("review not found", nil)
	}
	return nil
}

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

// RatingRepo implements database.RatingRepository on PostgreSQL.
// Every write recomputes the target's derived average in the same
// transaction, so the average never drifts from the rating rows.
type RatingRepo struct {
	pool *pgxpool.Pool
}

// NewRatingRepo creates a rating repository backed by the given pool.
func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

var _ database.RatingRepository = (*RatingRepo)(nil)

// UpsertBookRating writes the rating (last value wins) and returns the
// recomputed book average.
func (r *RatingRepo) UpsertBookRating(ctx context.Context, userID, bookID int64, rating int) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, dbErr("begin rate book", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO ratings (user_id, book_id, rating, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
	`, userID, bookID, rating)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrNotFound("book not found", err)
		}
		return 0, dbErr("upsert book rating", err)
	}

	avg, err := recomputeBookAverage(ctx, tx, bookID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dbErr("commit rate book", err)
	}
	return avg, nil
}

// GetBookRating returns the caller's rating for a book, or nil.
func (r *RatingRepo) GetBookRating(ctx context.Context, userID, bookID int64) (*api.Rating, error) {
	rt := &api.Rating{UserID: userID, BookID: bookID}
	err := r.pool.QueryRow(ctx,
		`SELECT rating, updated_at FROM ratings WHERE user_id = $1 AND book_id = $2`,
		userID, bookID).Scan(&rt.Rating, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get book rating", err)
	}
	return rt, nil
}

// DeleteBookRating removes the caller's rating and returns the recomputed
// average.
func (r *RatingRepo) DeleteBookRating(ctx context.Context, userID, bookID int64) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, dbErr("begin delete book rating", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM ratings WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return 0, dbErr("delete book rating", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound("rating not found", nil)
	}

	avg, err := recomputeBookAverage(ctx, tx, bookID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dbErr("commit delete book rating", err)
	}
	return avg, nil
}

func recomputeBookAverage(ctx context.Context, tx pgx.Tx, bookID int64) (float64, error) {
	var avg float64
	err := tx.QueryRow(ctx, `
		UPDATE books
		SET average_rating = COALESCE((SELECT AVG(rating) FROM ratings WHERE book_id = $1), 0)
		WHERE book_id = $1
		RETURNING average_rating
	`, bookID).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound("book not found", nil)
		}
		return 0, dbErr("recompute book average", err)
	}
	return avg, nil
}

// UpsertAuthorRating writes the rating (last value wins) and returns the
// recomputed author average.
func (r *RatingRepo) UpsertAuthorRating(ctx context.Context, userID, authorID int64, rating int) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, dbErr("begin rate author", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO author_ratings (user_id, author_id, rating, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, author_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
	`, userID, authorID, rating)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrNotFound("author not found", err)
		}
		return 0, dbErr("upsert author rating", err)
	}

	avg, err := recomputeAuthorAverage(ctx, tx, authorID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dbErr("commit rate author", err)
	}
	return avg, nil
}

// GetAuthorRating returns the caller's rating for an author, or nil.
func (r *RatingRepo) GetAuthorRating(ctx context.Context, userID, authorID int64) (*api.Rating, error) {
	rt := &api.Rating{UserID: userID, AuthorID: authorID}
	err := r.pool.QueryRow(ctx,
		`SELECT rating, updated_at FROM author_ratings WHERE user_id = $1 AND author_id = $2`,
		userID, authorID).Scan(&rt.Rating, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get author rating", err)
	}
	return rt, nil
}

// DeleteAuthorRating removes the caller's rating and returns the recomputed
// average.
func (r *RatingRepo) DeleteAuthorRating(ctx context.Context, userID, authorID int64) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, dbErr("begin delete author rating", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM author_ratings WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return 0, dbErr("delete author rating", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound("rating not found", nil)
	}

	avg, err := recomputeAuthorAverage(ctx, tx, authorID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dbErr("commit delete author rating", err)
	}
	return avg, nil
}

func recomputeAuthorAverage(ctx context.Context, tx pgx.Tx, authorID int64) (float64, error) {
	var avg float64
	err := tx.QueryRow(ctx, `
		UPDATE authors
		SET average_rating = COALESCE((SELECT AVG(rating) FROM author_ratings WHERE author_id = $1), 0)
		WHERE author_id = $1
		RETURNING average_rating
	`, authorID).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound("author not found", nil)
		}
		return 0, dbErr("recompute author average", err)
	}
	return avg, nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// RecommendationRepo implements database.RecommendationRepository on
// PostgreSQL. All candidate queries operate on approved books only.
type RecommendationRepo struct {
	pool *pgxpool.Pool
}

// NewRecommendationRepo creates a recommendation repository backed by the
// given pool.
func NewRecommendationRepo(pool *pgxpool.Pool) *RecommendationRepo {
	return &RecommendationRepo{pool: pool}
}

var _ database.RecommendationRepository = (*RecommendationRepo)(nil)

const recommendationColumns = `
	b.book_id, b.title, COALESCE(b.summary, ''), COALESCE(b.cover_image_url, ''),
	b.average_rating, b.publish_date,
	ARRAY(SELECT a.name FROM book_author ba JOIN authors a ON ba.author_id = a.author_id
	      WHERE ba.book_id = b.book_id ORDER BY a.name),
	ARRAY(SELECT g.genre_name FROM book_genre bg JOIN genres g ON bg.genre_id = g.genre_id
	      WHERE bg.book_id = b.book_id ORDER BY g.genre_name)`

func scanRecommendations(rows pgx.Rows, withMatchCount bool) ([]api.Recommendation, error) {
	defer rows.Close()
	var out []api.Recommendation
	for rows.Next() {
		rec := api.Recommendation{}
		dest := []any{&rec.BookID, &rec.Title, &rec.Summary, &rec.CoverImageURL,
			&rec.AverageRating, &rec.PublishDate, &rec.Authors, &rec.Genres}
		if withMatchCount {
			dest = append(dest, &rec.MatchingGenres)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, dbErr("scan recommendations", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan recommendations", err)
	}
	return out, nil
}

// ExcludedBookIDs returns every book the user has rated, reviewed, or holds
// a reading-status record for.
func (r *RecommendationRepo) ExcludedBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT book_id FROM ratings WHERE user_id = $1
		UNION
		SELECT book_id FROM reviews WHERE user_id = $1
		UNION
		SELECT book_id FROM user_reading_status WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, dbErr("collect excluded books", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dbErr("scan excluded books", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan excluded books", err)
	}
	return ids, nil
}

// CandidatesByGenres returns approved books in the given genres, minus the
// excluded set, ordered by matching genre count, then average rating, then
// randomly to break ties.
func (r *RecommendationRepo) CandidatesByGenres(ctx context.Context, genreIDs, exclude []int64, limit int) ([]api.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationColumns+`,
		       (SELECT COUNT(*) FROM book_genre bg
		        WHERE bg.book_id = b.book_id AND bg.genre_id = ANY($1)) AS matching_genres
		FROM books b
		WHERE b.approval_status = 'approved'
		  AND b.book_id <> ALL($2)
		  AND EXISTS (SELECT 1 FROM book_genre bg
		              WHERE bg.book_id = b.book_id AND bg.genre_id = ANY($1))
		ORDER BY matching_genres DESC, b.average_rating DESC, random()
		LIMIT $3
	`, genreIDs, exclude, limit)
	if err != nil {
		return nil, dbErr("select genre candidates", err)
	}
	return scanRecommendations(rows, true)
}

// CandidatesByRating returns approved books at or above minRating, minus the
// excluded set, ordered by average rating then randomly.
func (r *RecommendationRepo) CandidatesByRating(ctx context.Context, exclude []int64, minRating float64, limit int) ([]api.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationColumns+`
		FROM books b
		WHERE b.approval_status = 'approved'
		  AND b.book_id <> ALL($1)
		  AND b.average_rating >= $2
		ORDER BY b.average_rating DESC, random()
		LIMIT $3
	`, exclude, minRating, limit)
	if err != nil {
		return nil, dbErr("select rating candidates", err)
	}
	return scanRecommendations(rows, false)
}

// TopRated returns the globally top-rated approved books, ignoring any
// per-user exclusions.
func (r *RecommendationRepo) TopRated(ctx context.Context, limit int) ([]api.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationColumns+`
		FROM books b
		WHERE b.approval_status = 'approved'
		ORDER BY b.average_rating DESC, random()
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, dbErr("select top rated", err)
	}
	return scanRecommendations(rows, false)
}

// RecordInteraction appends one interaction event.
func (r *RecommendationRepo) RecordInteraction(ctx context.Context, event *api.InteractionEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO interaction_events (user_id, book_id, event_type)
		VALUES ($1, $2, $3)
	`, event.UserID, event.BookID, event.EventType)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound("book not found", err)
		}
		return dbErr("record interaction", err)
	}
	return nil
}

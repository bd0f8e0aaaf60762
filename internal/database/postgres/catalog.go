package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

const bookColumns = `b.book_id, b.title, b.summary, b.cover_image_url, b.publish_date,
	b.approval_status, b.average_rating, b.uploaded_by, b.approved_by, b.approved_at,
	COALESCE(b.rejection_reason, ''), b.created_at,
	ARRAY(SELECT a.name FROM book_author ba JOIN authors a ON ba.author_id = a.author_id
	      WHERE ba.book_id = b.book_id ORDER BY a.name),
	ARRAY(SELECT g.genre_name FROM book_genre bg JOIN genres g ON bg.genre_id = g.genre_id
	      WHERE bg.book_id = b.book_id ORDER BY g.genre_name)`

// CatalogRepo implements database.CatalogRepository on PostgreSQL.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepo creates a catalog repository backed by the given pool.
func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

var _ database.CatalogRepository = (*CatalogRepo)(nil)

func scanBook(row pgx.Row) (*api.Book, error) {
	b := &api.Book{}
	err := row.Scan(
		&b.BookID, &b.Title, &b.Summary, &b.CoverImageURL, &b.PublishDate,
		&b.ApprovalStatus, &b.AverageRating, &b.UploadedBy, &b.ApprovedBy,
		&b.ApprovedAt, &b.RejectionReason, &b.CreatedAt, &b.Authors, &b.Genres,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]api.Book, error) {
	var books []api.Book
	for rows.Next() {
		b := api.Book{}
		if err := rows.Scan(
			&b.BookID, &b.Title, &b.Summary, &b.CoverImageURL, &b.PublishDate,
			&b.ApprovalStatus, &b.AverageRating, &b.UploadedBy, &b.ApprovedBy,
			&b.ApprovedAt, &b.RejectionReason, &b.CreatedAt, &b.Authors, &b.Genres,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ListBooks returns a filtered, paginated book listing.
func (r *CatalogRepo) ListBooks(ctx context.Context, filter database.BookFilter) ([]api.Book, int, error) {
	status := filter.Status
	if status == "" {
		status = constants.StatusApproved
	}

	where := []string{"b.approval_status = $1"}
	args := []any{status}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where = append(where, fmt.Sprintf("LOWER(b.title) LIKE $%d", len(args)))
	}
	if filter.GenreID > 0 {
		args = append(args, filter.GenreID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_genre bg WHERE bg.book_id = b.book_id AND bg.genre_id = $%d)",
			len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books b WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count books", err)
	}

	order := "b.created_at DESC"
	if filter.SortBy == "rating" {
		order = "b.average_rating DESC, b.created_at DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM books b WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		bookColumns, cond, order, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, dbErr("list books", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, dbErr("scan books", err)
	}
	return books, total, nil
}

// GetBook retrieves one book with its authors and genres.
// Returns nil when no row matches.
func (r *CatalogRepo) GetBook(ctx context.Context, bookID int64) (*api.Book, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books b WHERE b.book_id = $1`, bookID)
	b, err := scanBook(row)
	if err != nil {
		return nil, dbErr("get book", err)
	}
	return b, nil
}

// CreateBook inserts the book and its author/genre links in one transaction.
func (r *CatalogRepo) CreateBook(ctx context.Context, book *api.Book, authorIDs, genreIDs []int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, dbErr("begin create book", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO books (title, summary, cover_image_url, publish_date, approval_status, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING book_id, created_at
	`, book.Title, book.Summary, book.CoverImageURL, book.PublishDate,
		book.ApprovalStatus, book.UploadedBy).Scan(&book.BookID, &book.CreatedAt)
	if err != nil {
		return 0, dbErr("insert book", err)
	}

	for _, authorID := range authorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO book_author (book_id, author_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			book.BookID, authorID); err != nil {
			if isForeignKeyViolation(err) {
				return 0, apperrors.ErrBadRequest("unknown author id", err)
			}
			return 0, dbErr("link author", err)
		}
	}
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO book_genre (book_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			book.BookID, genreID); err != nil {
			if isForeignKeyViolation(err) {
				return 0, apperrors.ErrBadRequest("unknown genre id", err)
			}
			return 0, dbErr("link genre", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dbErr("commit create book", err)
	}
	return book.BookID, nil
}

// SetApproval moves a book through the approval workflow.
func (r *CatalogRepo) SetApproval(ctx context.Context, bookID int64, status string, approvedBy int64, reason *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE books
		SET approval_status = $2, approved_by = $3, approved_at = now(), rejection_reason = $4
		WHERE book_id = $1
	`, bookID, status, approvedBy, reason)
	if err != nil {
		return dbErr("set book approval", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("book not found", nil)
	}
	return nil
}

// ListBooksByUploader returns an uploader's books, optionally filtered by
// approval status.
func (r *CatalogRepo) ListBooksByUploader(ctx context.Context, uploaderID int64, status string) ([]api.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books b WHERE b.uploaded_by = $1`
	args := []any{uploaderID}
	if status != "" {
		query += ` AND b.approval_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbErr("list uploader books", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, dbErr("scan uploader books", err)
	}
	return books, nil
}

// AuthorBookStats returns per-book rating counters for an uploader.
func (r *CatalogRepo) AuthorBookStats(ctx context.Context, uploaderID int64) ([]api.BookRatingStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.book_id, b.title,
		       (SELECT COUNT(*) FROM ratings rt WHERE rt.book_id = b.book_id),
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.book_id = b.book_id),
		       b.average_rating
		FROM books b
		WHERE b.uploaded_by = $1
		ORDER BY b.created_at DESC
	`, uploaderID)
	if err != nil {
		return nil, dbErr("author book stats", err)
	}
	defer rows.Close()

	var stats []api.BookRatingStats
	for rows.Next() {
		s := api.BookRatingStats{}
		if err := rows.Scan(&s.BookID, &s.Title, &s.RatingCount, &s.ReviewCount, &s.AverageRating); err != nil {
			return nil, dbErr("scan book stats", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan book stats", err)
	}
	return stats, nil
}

const authorColumns = `author_id, name, bio, verified, is_registered_author, user_id, average_rating`

func scanAuthor(row pgx.Row) (*api.Author, error) {
	a := &api.Author{}
	err := row.Scan(&a.AuthorID, &a.Name, &a.Bio, &a.Verified,
		&a.IsRegisteredAuthor, &a.UserID, &a.AverageRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// GetAuthor retrieves one author. Returns nil when no row matches.
func (r *CatalogRepo) GetAuthor(ctx context.Context, authorID int64) (*api.Author, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE author_id = $1`, authorID)
	a, err := scanAuthor(row)
	if err != nil {
		return nil, dbErr("get author", err)
	}
	return a, nil
}

// GetAuthorByUserID retrieves the registered author linked to a user.
// Returns nil when the user has no author record.
func (r *CatalogRepo) GetAuthorByUserID(ctx context.Context, userID int64) (*api.Author, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE user_id = $1 AND is_registered_author`, userID)
	a, err := scanAuthor(row)
	if err != nil {
		return nil, dbErr("get author by user", err)
	}
	return a, nil
}

// CreateAuthor inserts an author record and returns its id.
func (r *CatalogRepo) CreateAuthor(ctx context.Context, author *api.Author) (int64, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO authors (name, bio, verified, is_registered_author, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING author_id
	`, author.Name, author.Bio, author.Verified, author.IsRegisteredAuthor, author.UserID).
		Scan(&author.AuthorID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrConflict("author already exists for this user", err)
		}
		return 0, dbErr("create author", err)
	}
	return author.AuthorID, nil
}

// SearchAuthors finds authors by name, ordered by rating.
func (r *CatalogRepo) SearchAuthors(ctx context.Context, query string, limit, offset int) ([]api.Author, int, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM authors WHERE LOWER(name) LIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, dbErr("count author search", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+authorColumns+` FROM authors
		WHERE LOWER(name) LIKE $1
		ORDER BY average_rating DESC, name
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, dbErr("search authors", err)
	}
	defer rows.Close()

	var authors []api.Author
	for rows.Next() {
		a := api.Author{}
		if err := rows.Scan(&a.AuthorID, &a.Name, &a.Bio, &a.Verified,
			&a.IsRegisteredAuthor, &a.UserID, &a.AverageRating); err != nil {
			return nil, 0, dbErr("scan authors", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("scan authors", err)
	}
	return authors, total, nil
}

// ListGenres returns the full genre catalog.
func (r *CatalogRepo) ListGenres(ctx context.Context) ([]api.Genre, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT genre_id, genre_name FROM genres ORDER BY genre_name`)
	if err != nil {
		return nil, dbErr("list genres", err)
	}
	defer rows.Close()

	var genres []api.Genre
	for rows.Next() {
		g := api.Genre{}
		if err := rows.Scan(&g.GenreID, &g.GenreName); err != nil {
			return nil, dbErr("scan genres", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan genres", err)
	}
	return genres, nil
}

// SeedGenres inserts the named genres, skipping ones that already exist.
// Returns the number of rows actually inserted.
func (r *CatalogRepo) SeedGenres(ctx context.Context, names []string) (int, error) {
	inserted := 0
	for _, name := range names {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO genres (genre_name)
			VALUES ($1)
			ON CONFLICT (genre_name) DO NOTHING
		`, name)
		if err != nil {
			return inserted, dbErr("seed genres", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// GetGenre retrieves one genre. Returns nil when no row matches.
func (r *CatalogRepo) GetGenre(ctx context.Context, genreID int64) (*api.Genre, error) {
	g := &api.Genre{}
	err := r.pool.QueryRow(ctx,
		`SELECT genre_id, genre_name FROM genres WHERE genre_id = $1`, genreID).
		Scan(&g.GenreID, &g.GenreName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get genre", err)
	}
	return g, nil
}

// AddFavoriteGenre marks a genre as a favorite; re-adding is a no-op.
func (r *CatalogRepo) AddFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_favorite_genres (user_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, genreID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound("genre not found", err)
		}
		return dbErr("add favorite genre", err)
	}
	return nil
}

// RemoveFavoriteGenre unmarks a favorite genre; removing a non-favorite is
// a no-op.
func (r *CatalogRepo) RemoveFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_favorite_genres WHERE user_id = $1 AND genre_id = $2`,
		userID, genreID)
	if err != nil {
		return dbErr("remove favorite genre", err)
	}
	return nil
}

// ListFavoriteGenres returns the user's favorite genres.
func (r *CatalogRepo) ListFavoriteGenres(ctx context.Context, userID int64) ([]api.Genre, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.genre_id, g.genre_name
		FROM user_favorite_genres ufg
		JOIN genres g ON ufg.genre_id = g.genre_id
		WHERE ufg.user_id = $1
		ORDER BY g.genre_name
	`, userID)
	if err != nil {
		return nil, dbErr("list favorite genres", err)
	}
	defer rows.Close()

	var genres []api.Genre
	for rows.Next() {
		g := api.Genre{}
		if err := rows.Scan(&g.GenreID, &g.GenreName); err != nil {
			return nil, dbErr("scan favorite genres", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan favorite genres", err)
	}
	return genres, nil
}

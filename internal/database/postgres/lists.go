package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// defaultListOrder keeps the five default kinds in their canonical order
// ahead of custom lists.
const defaultListOrder = `
	CASE l.name
		WHEN 'Reading' THEN 1
		WHEN 'Completed' THEN 2
		WHEN 'Plan to Read' THEN 3
		WHEN 'On-Hold' THEN 4
		WHEN 'Dropped' THEN 5
		ELSE 6
	END, l.created_at`

// ListRepo implements database.ListRepository on PostgreSQL.
type ListRepo struct {
	pool *pgxpool.Pool
}

// NewListRepo creates a list repository backed by the given pool.
func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

var _ database.ListRepository = (*ListRepo)(nil)

// CreateDefaultLists provisions the five default private lists.
// Idempotent through the partial unique index on (user_id, name).
func (r *ListRepo) CreateDefaultLists(ctx context.Context, userID int64) error {
	for _, name := range constants.DefaultListNames {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO lists (user_id, name, visibility)
			VALUES ($1, $2, 'private')
			ON CONFLICT DO NOTHING
		`, userID, name)
		if err != nil {
			return dbErr("create default lists", err)
		}
	}
	return nil
}

// CreateCustomList inserts a Custom-kind list.
func (r *ListRepo) CreateCustomList(ctx context.Context, userID int64, title, visibility string) (*api.List, error) {
	l := &api.List{UserID: userID, Name: constants.ListCustom, Title: title, Visibility: visibility}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lists (user_id, name, title, visibility)
		VALUES ($1, 'Custom', $2, $3)
		RETURNING list_id, created_at, updated_at
	`, userID, title, visibility).Scan(&l.ListID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, dbErr("create custom list", err)
	}
	return l, nil
}

func scanList(row pgx.Row) (*api.List, error) {
	l := &api.List{}
	var title *string
	err := row.Scan(&l.ListID, &l.UserID, &l.Name, &title, &l.Visibility,
		&l.CreatedAt, &l.UpdatedAt, &l.BookCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if title != nil {
		l.Title = *title
	}
	return l, nil
}

const listColumns = `l.list_id, l.user_id, l.name, l.title, l.visibility,
	l.created_at, l.updated_at,
	(SELECT COUNT(*) FROM list_books lb WHERE lb.list_id = l.list_id)`

// GetList retrieves one list with its book count. Returns nil when absent.
func (r *ListRepo) GetList(ctx context.Context, listID int64) (*api.List, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+listColumns+` FROM lists l WHERE l.list_id = $1`, listID)
	l, err := scanList(row)
	if err != nil {
		return nil, dbErr("get list", err)
	}
	return l, nil
}

func (r *ListRepo) listLists(ctx context.Context, query string, args ...any) ([]api.List, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbErr("list lists", err)
	}
	defer rows.Close()

	var lists []api.List
	for rows.Next() {
		l := api.List{}
		var title *string
		if err := rows.Scan(&l.ListID, &l.UserID, &l.Name, &title, &l.Visibility,
			&l.CreatedAt, &l.UpdatedAt, &l.BookCount); err != nil {
			return nil, dbErr("scan lists", err)
		}
		if title != nil {
			l.Title = *title
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan lists", err)
	}
	return lists, nil
}

// ListUserLists returns all of a user's lists in canonical order.
func (r *ListRepo) ListUserLists(ctx context.Context, userID int64) ([]api.List, error) {
	return r.listLists(ctx,
		`SELECT `+listColumns+` FROM lists l WHERE l.user_id = $1 ORDER BY `+defaultListOrder,
		userID)
}

// ListPublicLists returns only a user's public lists.
func (r *ListRepo) ListPublicLists(ctx context.Context, userID int64) ([]api.List, error) {
	return r.listLists(ctx,
		`SELECT `+listColumns+` FROM lists l
		 WHERE l.user_id = $1 AND l.visibility = 'public'
		 ORDER BY `+defaultListOrder,
		userID)
}

// UpdateList applies partial title/visibility updates.
func (r *ListRepo) UpdateList(ctx context.Context, listID int64, title, visibility *string) (*api.List, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE lists l SET
			title      = COALESCE($2, title),
			visibility = COALESCE($3, visibility),
			updated_at = now()
		WHERE list_id = $1
		RETURNING `+listColumns,
		listID, title, visibility)

	l, err := scanList(row)
	if err != nil {
		return nil, dbErr("update list", err)
	}
	if l == nil {
		return nil, apperrors.ErrNotFound("list not found", nil)
	}
	return l, nil
}

// DeleteList removes a list; membership rows cascade.
func (r *ListRepo) DeleteList(ctx context.Context, listID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE list_id = $1`, listID)
	if err != nil {
		return dbErr("delete list", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("list not found", nil)
	}
	return nil
}

// AddBookToList is an idempotent upsert: re-adding refreshes added_at. When
// the target is a default list, the user's reading status for the book is
// updated to the list kind in the same transaction.
func (r *ListRepo) AddBookToList(ctx context.Context, listID, bookID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return dbErr("add book to list", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO list_books (list_id, book_id, added_at)
		VALUES ($1, $2, now())
		ON CONFLICT (list_id, book_id) DO UPDATE SET added_at = now()
	`, listID, bookID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound("book not found", err)
		}
		return dbErr("add book to list", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_reading_status (user_id, book_id, status)
		SELECT l.user_id, $2, l.name FROM lists l
		WHERE l.list_id = $1 AND l.name <> $3
		ON CONFLICT (user_id, book_id) DO UPDATE SET
			status = EXCLUDED.status, updated_at = now()
	`, listID, bookID, constants.ListCustom)
	if err != nil {
		return dbErr("update reading status", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return dbErr("add book to list", err)
	}
	return nil
}

// RemoveBookFromList removes a membership row, clearing the reading status
// when the book left a default list whose kind still matches.
func (r *ListRepo) RemoveBookFromList(ctx context.Context, listID, bookID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return dbErr("remove book from list", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`DELETE FROM list_books WHERE list_id = $1 AND book_id = $2`, listID, bookID)
	if err != nil {
		return dbErr("remove book from list", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound("book is not in this list", nil)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM user_reading_status s
		USING lists l
		WHERE l.list_id = $1 AND l.name <> $3
		  AND s.user_id = l.user_id AND s.book_id = $2 AND s.status = l.name
	`, listID, bookID, constants.ListCustom)
	if err != nil {
		return dbErr("update reading status", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return dbErr("remove book from list", err)
	}
	return nil
}

// ListBooksInList returns a list's books with catalog details, newest first.
func (r *ListRepo) ListBooksInList(ctx context.Context, listID int64) ([]api.ListBookEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.book_id, b.title, b.cover_image_url, b.average_rating, b.summary,
		       lb.added_at,
		       ARRAY(SELECT a.name FROM book_author ba
		             JOIN authors a ON ba.author_id = a.author_id
		             WHERE ba.book_id = b.book_id ORDER BY a.name),
		       COALESCE((SELECT g.genre_name FROM book_genre bg
		                 JOIN genres g ON bg.genre_id = g.genre_id
		                 WHERE bg.book_id = b.book_id
		                 ORDER BY g.genre_name LIMIT 1), '')
		FROM list_books lb
		JOIN books b ON lb.book_id = b.book_id
		WHERE lb.list_id = $1
		ORDER BY lb.added_at DESC
	`, listID)
	if err != nil {
		return nil, dbErr("list books in list", err)
	}
	defer rows.Close()

	var entries []api.ListBookEntry
	for rows.Next() {
		e := api.ListBookEntry{}
		if err := rows.Scan(&e.BookID, &e.Title, &e.CoverImageURL, &e.AverageRating,
			&e.Summary, &e.AddedAt, &e.Authors, &e.Genre); err != nil {
			return nil, dbErr("scan list books", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan list books", err)
	}
	return entries, nil
}

// ListMembershipForBook returns every caller list with an is_added flag for
// the given book.
func (r *ListRepo) ListMembershipForBook(ctx context.Context, userID, bookID int64) ([]api.ListMembership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listColumns+`,
		       lb.book_id IS NOT NULL,
		       lb.added_at
		FROM lists l
		LEFT JOIN list_books lb ON l.list_id = lb.list_id AND lb.book_id = $2
		WHERE l.user_id = $1
		ORDER BY `+defaultListOrder,
		userID, bookID)
	if err != nil {
		return nil, dbErr("list membership", err)
	}
	defer rows.Close()

	var memberships []api.ListMembership
	for rows.Next() {
		m := api.ListMembership{}
		var title *string
		if err := rows.Scan(&m.ListID, &m.UserID, &m.Name, &title, &m.Visibility,
			&m.CreatedAt, &m.UpdatedAt, &m.BookCount, &m.IsAdded, &m.AddedAt); err != nil {
			return nil, dbErr("scan list membership", err)
		}
		if title != nil {
			m.Title = *title
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("scan list membership", err)
	}
	return memberships, nil
}

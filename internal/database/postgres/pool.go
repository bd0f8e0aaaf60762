// Package postgres implements the database repository interfaces on top of
// PostgreSQL through pgx connection pools.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/bookarc/bookarc/internal/errors"
)

const pingTimeout = 5 * time.Second

// NewPool opens a pgx connection pool against the given DSN and verifies
// connectivity with a bounded ping.
func NewPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperrors.ErrDatabaseError("invalid database configuration", err)
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, apperrors.ErrDatabaseError("failed to create connection pool", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperrors.ErrDatabaseError("database is unreachable", err)
	}

	return pool, nil
}

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// foreignKeyViolation is the PostgreSQL error code for missing referenced rows.
const foreignKeyViolation = "23503"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// dbErr wraps an unexpected driver error into the application taxonomy.
func dbErr(op string, err error) error {
	return apperrors.ErrDatabaseError("database operation failed: "+op, err)
}

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

// VerificationRepo implements database.VerificationRepository on PostgreSQL.
// A partial unique index keeps at most one pending request per user.
type VerificationRepo struct {
	pool *pgxpool.Pool
}

// NewVerificationRepo creates a verification repository backed by the given pool.
func NewVerificationRepo(pool *pgxpool.Pool) *VerificationRepo {
	return &VerificationRepo{pool: pool}
}

var _ database.VerificationRepository = (*VerificationRepo)(nil)

const verificationColumns = `
	r.request_id, r.user_id, r.pen_name, COALESCE(r.bio, ''),
	COALESCE(r.evidence_url, ''), r.status, r.submitted_at,
	r.reviewed_by, r.reviewed_at, COALESCE(r.rejection_reason, '')`

func scanVerificationRequest(row pgx.Row) (*api.VerificationRequest, error) {
	req := api.VerificationRequest{}
	err := row.Scan(&req.RequestID, &req.UserID, &req.PenName, &req.Bio,
		&req.EvidenceURL, &req.Status, &req.SubmittedAt,
		&req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbErr("scan verification request", err)
	}
	return &req, nil
}

// CreateRequest stores a new pending request. A second open request for the
// same user returns a conflict.
func (r *VerificationRepo) CreateRequest(ctx context.Context, req *api.VerificationRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO author_verification_requests (user_id, pen_name, bio, evidence_url)
		VALUES ($1, $2, $3, $4)
		RETURNING request_id
	`, req.UserID, req.PenName, req.Bio, req.EvidenceURL).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrConflict("you already have a pending verification request", err)
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrNotFound("user not found", err)
		}
		return 0, dbErr("create verification request", err)
	}
	return id, nil
}

// GetRequest fetches one request by id, or nil when absent.
func (r *VerificationRepo) GetRequest(ctx context.Context, requestID int64) (*api.VerificationRequest, error) {
	return scanVerificationRequest(r.pool.QueryRow(ctx, `
		SELECT `+verificationColumns+`
		FROM author_verification_requests r
		WHERE r.request_id = $1
	`, requestID))
}

// GetOpenRequestByUser fetches the user's pending request, or nil when none
// is open.
func (r *VerificationRepo) GetOpenRequestByUser(ctx context.Context, userID int64) (*api.VerificationRequest, error) {
	return scanVerificationRequest(r.pool.QueryRow(ctx, `
		SELECT `+verificationColumns+`
		FROM author_verification_requests r
		WHERE r.user_id = $1 AND r.status = 'pending'
	`, userID))
}

// GetLatestRequestByUser fetches the user's most recently submitted request
// regardless of status, or nil when the user never applied.
func (r *VerificationRepo) GetLatestRequestByUser(ctx context.Context, userID int64) (*api.VerificationRequest, error) {
	return scanVerificationRequest(r.pool.QueryRow(ctx, `
		SELECT `+verificationColumns+`
		FROM author_verification_requests r
		WHERE r.user_id = $1
		ORDER BY r.submitted_at DESC, r.request_id DESC
		LIMIT 1
	`, userID))
}

// ListPending returns pending requests for admin review, oldest first, with
// the submitter's username joined in.
func (r *VerificationRepo) ListPending(ctx context.Context, limit, offset int) ([]api.VerificationRequest, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM author_verification_requests WHERE status = 'pending'`,
	).Scan(&total)
	if err != nil {
		return nil, 0, dbErr("count pending verifications", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+verificationColumns+`, u.username
		FROM author_verification_requests r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.status = 'pending'
		ORDER BY r.submitted_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, dbErr("list pending verifications", err)
	}
	defer rows.Close()

	var out []api.VerificationRequest
	for rows.Next() {
		req := api.VerificationRequest{}
		if err := rows.Scan(&req.RequestID, &req.UserID, &req.PenName, &req.Bio,
			&req.EvidenceURL, &req.Status, &req.SubmittedAt,
			&req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason,
			&req.Username); err != nil {
			return nil, 0, dbErr("scan pending verifications", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("scan pending verifications", err)
	}
	return out, total, nil
}

// SetStatus resolves a pending request. Only pending requests can move; a
// request that was already resolved returns a conflict.
func (r *VerificationRepo) SetStatus(ctx context.Context, requestID int64, status string, reviewedBy int64, reason *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE author_verification_requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW(), rejection_reason = $4
		WHERE request_id = $1 AND status = 'pending'
	`, requestID, status, reviewedBy, reason)
	if err != nil {
		return dbErr("resolve verification request", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.ErrNotFound("verification request not found", nil)
		}
		return apperrors.ErrConflict("verification request already resolved", nil)
	}
	return nil
}

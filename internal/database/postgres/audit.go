package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
)

// AuditRepo implements database.AuditRepository on PostgreSQL.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepo creates an audit repository backed by the given pool.
func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

var _ database.AuditRepository = (*AuditRepo)(nil)

// RecordAction appends one audit trail entry.
func (r *AuditRepo) RecordAction(ctx context.Context, entry *api.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_audit_logs (admin_user_id, action_type, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.AdminUserID, entry.ActionType, entry.EntityType, entry.EntityID, entry.Details)
	if err != nil {
		return dbErr("record audit action", err)
	}
	return nil
}

// ListActions returns audit entries newest first.
func (r *AuditRepo) ListActions(ctx context.Context, limit, offset int) ([]api.AuditLog, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_audit_logs`).Scan(&total); err != nil {
		return nil, 0, dbErr("count audit actions", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT log_id, admin_user_id, action_type, entity_type, entity_id,
		       details, created_at
		FROM admin_audit_logs
		ORDER BY created_at DESC, log_id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, dbErr("list audit actions", err)
	}
	defer rows.Close()

	var out []api.AuditLog
	for rows.Next() {
		entry := api.AuditLog{}
		if err := rows.Scan(&entry.LogID, &entry.AdminUserID, &entry.ActionType,
			&entry.EntityType, &entry.EntityID, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, 0, dbErr("scan audit actions", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("scan audit actions", err)
	}
	return out, total, nil
}

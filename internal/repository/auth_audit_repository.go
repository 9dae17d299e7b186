package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poskit/pos-gateway/internal/domain"
)

// AuthAuditRepository stores session audit entries.
type AuthAuditRepository interface {
	Create(ctx context.Context, entry *domain.AuthAudit) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuthAudit, error)
}

type authAuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuthAuditRepository builds the repository; it returns nil without a pool.
func NewAuthAuditRepository(pool *pgxpool.Pool) AuthAuditRepository {
	if pool == nil {
		return nil
	}
	return &authAuditRepository{pool: pool}
}

func (r *authAuditRepository) Create(ctx context.Context, entry *domain.AuthAudit) error {
	const query = `
        INSERT INTO auth_audit (event_id, action, subject_id, email, role, origin, detail)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (event_id) DO NOTHING
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		entry.EventID,
		entry.Action,
		entry.SubjectID,
		entry.Email,
		entry.Role,
		entry.Origin,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil && isNoRows(err) {
		// duplicate event id, already recorded
		return nil
	}
	return err
}

func (r *authAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuthAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, event_id, action, subject_id, email, role, origin, detail, created_at
        FROM auth_audit ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuthAudit
	for rows.Next() {
		var entry domain.AuthAudit
		if err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.Action,
			&entry.SubjectID,
			&entry.Email,
			&entry.Role,
			&entry.Origin,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

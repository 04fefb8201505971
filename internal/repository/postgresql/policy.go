package postgresql

import (
	"context"
	"errors"

	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The company_policy table holds exactly one row, pinned to id = 1 by a
// CHECK constraint. Upsert targets that row directly.
type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Get implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Get(ctx context.Context) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, office_start_time, office_end_time, grace_minutes, late_mark_after_minutes,
			   updated_by, created_at, updated_at
		FROM company_policy
		WHERE id = 1
	`

	var found policy.Policy
	err := q.QueryRow(ctx, query).Scan(
		&found.ID,
		&found.OfficeStartTime,
		&found.OfficeEndTime,
		&found.GraceMinutes,
		&found.LateMarkAfterMinutes,
		&found.UpdatedBy,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, err
	}

	return found, nil
}

// Upsert implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Upsert(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_policy (
			id, office_start_time, office_end_time, grace_minutes, late_mark_after_minutes, updated_by
		)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET office_start_time = EXCLUDED.office_start_time,
			office_end_time = EXCLUDED.office_end_time,
			grace_minutes = EXCLUDED.grace_minutes,
			late_mark_after_minutes = EXCLUDED.late_mark_after_minutes,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, office_start_time, office_end_time, grace_minutes, late_mark_after_minutes,
				  updated_by, created_at, updated_at
	`

	var saved policy.Policy
	err := q.QueryRow(ctx, query,
		p.OfficeStartTime,
		p.OfficeEndTime,
		p.GraceMinutes,
		p.LateMarkAfterMinutes,
		p.UpdatedBy,
	).Scan(
		&saved.ID,
		&saved.OfficeStartTime,
		&saved.OfficeEndTime,
		&saved.GraceMinutes,
		&saved.LateMarkAfterMinutes,
		&saved.UpdatedBy,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return policy.Policy{}, err
	}

	return saved, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelectColumns = `
	lr.id, lr.profile_id, lr.leave_type, lr.start_date, lr.end_date, lr.total_days,
	lr.reason, lr.status, lr.approved_by, lr.approved_at, lr.remarks,
	lr.created_at, lr.updated_at
`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, profile_id, leave_type, start_date, end_date, total_days, reason, status
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ProfileID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.TotalDays,
		request.Reason,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveSelectColumns + `,
			   p.full_name AS profile_name,
			   ap.full_name AS approver_name
		FROM leave_requests lr
		JOIN profiles p ON lr.profile_id = p.id
		LEFT JOIN profiles ap ON lr.approved_by = ap.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var profileName string
	var approverName *string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.ProfileID,
		&req.LeaveType,
		&req.StartDate,
		&req.EndDate,
		&req.TotalDays,
		&req.Reason,
		&req.Status,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.Remarks,
		&req.CreatedAt,
		&req.UpdatedAt,
		&profileName,
		&approverName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.ProfileName = &profileName
	req.ApproverName = approverName

	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.ProfileID != nil && *filter.ProfileID != "" {
		whereClause += fmt.Sprintf(" AND lr.profile_id = $%d", argIndex)
		args = append(args, *filter.ProfileID)
		argIndex++
	}

	if filter.LeaveType != nil && *filter.LeaveType != "" {
		whereClause += fmt.Sprintf(" AND lr.leave_type = $%d", argIndex)
		args = append(args, *filter.LeaveType)
		argIndex++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND lr.start_date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND lr.end_date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr %s`, whereClause)

	var total int64
	err := q.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Get data with pagination
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s,
			   p.full_name AS profile_name,
			   ap.full_name AS approver_name
		FROM leave_requests lr
		JOIN profiles p ON lr.profile_id = p.id
		LEFT JOIN profiles ap ON lr.approved_by = ap.id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveSelectColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var profileName string
		var approverName *string

		err := rows.Scan(
			&req.ID,
			&req.ProfileID,
			&req.LeaveType,
			&req.StartDate,
			&req.EndDate,
			&req.TotalDays,
			&req.Reason,
			&req.Status,
			&req.ApprovedBy,
			&req.ApprovedAt,
			&req.Remarks,
			&req.CreatedAt,
			&req.UpdatedAt,
			&profileName,
			&approverName,
		)
		if err != nil {
			return nil, 0, err
		}

		req.ProfileName = &profileName
		req.ApproverName = approverName

		requests = append(requests, req)
	}

	return requests, total, nil
}

// HasOverlapping implements leave.LeaveRequestRepository. Two requests
// overlap when their inclusive date ranges share at least one day; rejected
// requests never block a new submission.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, profileID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE profile_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, profileID, start, end).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Decide implements leave.LeaveRequestRepository. The status = 'pending'
// predicate makes the transition a compare-and-set; losing a race reports
// false instead of overwriting the winner's decision.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.LeaveStatus, approverID string, remarks *string, decidedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3,
			remarks = COALESCE($4, remarks), updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, status, approverID, decidedAt, remarks, id)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

// UpdateRemarks implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateRemarks(ctx context.Context, id string, remarks string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET remarks = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, remarks, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// ListForRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.start_date <= $2 AND lr.end_date >= $1"
	args := []interface{}{from, to}

	if profileID != nil {
		whereClause += " AND lr.profile_id = $3"
		args = append(args, *profileID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		%s
		ORDER BY lr.start_date ASC
	`, leaveSelectColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID,
			&req.ProfileID,
			&req.LeaveType,
			&req.StartDate,
			&req.EndDate,
			&req.TotalDays,
			&req.Reason,
			&req.Status,
			&req.ApprovedBy,
			&req.ApprovedAt,
			&req.Remarks,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

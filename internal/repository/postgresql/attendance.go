package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelectColumns = `
	a.id, a.profile_id, a.date, a.check_in, a.check_out, a.status,
	a.total_hours, a.late_minutes, a.late_mark, a.created_at, a.updated_at
`

// Create implements attendance.AttendanceRepository. The table carries
// UNIQUE(profile_id, date); a violation means the profile already has a
// record for that day.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, profile_id, date, check_in, check_out, status, total_hours, late_minutes, late_mark
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ProfileID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.TotalHours,
		record.LateMinutes,
		record.LateMark,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, err
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceSelectColumns + `,
			   p.full_name AS profile_name,
			   p.department
		FROM attendance_records a
		JOIN profiles p ON a.profile_id = p.id
		WHERE a.id = $1
	`

	var found attendance.Record
	var profileName string
	var department *string

	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.ProfileID,
		&found.Date,
		&found.CheckIn,
		&found.CheckOut,
		&found.Status,
		&found.TotalHours,
		&found.LateMinutes,
		&found.LateMark,
		&found.CreatedAt,
		&found.UpdatedAt,
		&profileName,
		&department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, err
	}

	found.ProfileName = &profileName
	found.Department = department

	return found, nil
}

// GetByProfileAndDate implements attendance.AttendanceRepository. Returns nil
// when no record exists for that day.
func (r *attendanceRepositoryImpl) GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceSelectColumns + `
		FROM attendance_records a
		WHERE a.profile_id = $1 AND a.date = $2
	`

	var found attendance.Record
	err := q.QueryRow(ctx, query, profileID, date).Scan(
		&found.ID,
		&found.ProfileID,
		&found.Date,
		&found.CheckIn,
		&found.CheckOut,
		&found.Status,
		&found.TotalHours,
		&found.LateMinutes,
		&found.LateMark,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2, status = $3, total_hours = $4,
			late_minutes = $5, late_mark = $6, updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.TotalHours,
		record.LateMinutes,
		record.LateMark,
		record.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.ProfileID != nil && *filter.ProfileID != "" {
		whereClause += fmt.Sprintf(" AND a.profile_id = $%d", argIndex)
		args = append(args, *filter.ProfileID)
		argIndex++
	}

	if filter.ProfileName != nil && *filter.ProfileName != "" {
		whereClause += fmt.Sprintf(" AND p.full_name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.ProfileName+"%")
		argIndex++
	}

	whereClause, args, argIndex = appendAttendanceDateFilters(whereClause, args, argIndex, filter.Date, filter.StartDate, filter.EndDate)

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance_records a
		JOIN profiles p ON a.profile_id = p.id
		%s
	`, whereClause)

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
			   p.department
		FROM attendance_records a
		JOIN profiles p ON a.profile_id = p.id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, attendanceSelectColumns, whereClause, attendanceOrderBy(filter.SortBy, filter.SortOrder), argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var profileName string
		var department *string

		err := rows.Scan(
			&rec.ID,
			&rec.ProfileID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.Status,
			&rec.TotalHours,
			&rec.LateMinutes,
			&rec.LateMark,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&profileName,
			&department,
		)
		if err != nil {
			return nil, 0, err
		}

		rec.ProfileName = &profileName
		rec.Department = department

		records = append(records, rec)
	}

	return records, total, nil
}

// ListByProfile implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByProfile(ctx context.Context, profileID string, filter attendance.MyAttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE a.profile_id = $1"
	args := []interface{}{profileID}
	argIndex := 2

	whereClause, args, argIndex = appendAttendanceDateFilters(whereClause, args, argIndex, filter.Date, filter.StartDate, filter.EndDate)

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_records a %s`, whereClause)

	var total int64
	err := q.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, attendanceSelectColumns, whereClause, attendanceOrderBy(filter.SortBy, filter.SortOrder), argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID,
			&rec.ProfileID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.Status,
			&rec.TotalHours,
			&rec.LateMinutes,
			&rec.LateMark,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListForRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE a.date >= $1 AND a.date <= $2"
	args := []interface{}{from, to}

	if profileID != nil {
		whereClause += " AND a.profile_id = $3"
		args = append(args, *profileID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		%s
		ORDER BY a.date ASC
	`, attendanceSelectColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID,
			&rec.ProfileID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.Status,
			&rec.TotalHours,
			&rec.LateMinutes,
			&rec.LateMark,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// InsertAbsent implements attendance.AttendanceRepository. ON CONFLICT DO
// NOTHING keeps the job idempotent and never overwrites a real check-in.
func (r *attendanceRepositoryImpl) InsertAbsent(ctx context.Context, profileID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, profile_id, date, status, late_mark)
		VALUES (uuidv7(), $1, $2, 'absent', FALSE)
		ON CONFLICT (profile_id, date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, profileID, date)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

func appendAttendanceDateFilters(whereClause string, args []interface{}, argIndex int, date, startDate, endDate *string) (string, []interface{}, int) {
	if date != nil && *date != "" {
		whereClause += fmt.Sprintf(" AND a.date = $%d", argIndex)
		args = append(args, *date)
		argIndex++
	}
	if startDate != nil && *startDate != "" {
		whereClause += fmt.Sprintf(" AND a.date >= $%d", argIndex)
		args = append(args, *startDate)
		argIndex++
	}
	if endDate != nil && *endDate != "" {
		whereClause += fmt.Sprintf(" AND a.date <= $%d", argIndex)
		args = append(args, *endDate)
		argIndex++
	}
	return whereClause, args, argIndex
}

func attendanceOrderBy(sortBy, sortOrder string) string {
	column := "a.date"
	switch sortBy {
	case "check_in":
		column = "a.check_in"
	case "status":
		column = "a.status"
	case "total_hours":
		column = "a.total_hours"
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	return column + " " + direction
}

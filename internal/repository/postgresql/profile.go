package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileSelectColumns = `
	id, user_id, full_name, email, role, department, employment_status, hire_date,
	created_at, updated_at
`

// Create implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (id, user_id, full_name, email, role, department, employment_status, hire_date)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileSelectColumns + `
	`

	var created profile.Profile
	err := q.QueryRow(ctx, query,
		p.UserID,
		p.FullName,
		p.Email,
		p.Role,
		p.Department,
		p.EmploymentStatus,
		p.HireDate,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.FullName,
		&created.Email,
		&created.Role,
		&created.Department,
		&created.EmploymentStatus,
		&created.HireDate,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return profile.Profile{}, profile.ErrProfileAlreadyExists
		}
		return profile.Profile{}, err
	}

	return created, nil
}

// GetByID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileSelectColumns + ` FROM profiles WHERE id = $1`

	return r.scanOne(q.QueryRow(ctx, query, id))
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileSelectColumns + ` FROM profiles WHERE user_id = $1`

	return r.scanOne(q.QueryRow(ctx, query, userID))
}

func (r *profileRepositoryImpl) scanOne(row pgx.Row) (profile.Profile, error) {
	var found profile.Profile
	err := row.Scan(
		&found.ID,
		&found.UserID,
		&found.FullName,
		&found.Email,
		&found.Role,
		&found.Department,
		&found.EmploymentStatus,
		&found.HireDate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return found, nil
}

// List implements profile.ProfileRepository.
func (r *profileRepositoryImpl) List(ctx context.Context, filter profile.ListProfilesFilter) ([]profile.Profile, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Role != nil && *filter.Role != "" {
		whereClause += fmt.Sprintf(" AND role = $%d", argIndex)
		args = append(args, *filter.Role)
		argIndex++
	}

	if filter.Department != nil && *filter.Department != "" {
		whereClause += fmt.Sprintf(" AND department = $%d", argIndex)
		args = append(args, *filter.Department)
		argIndex++
	}

	if filter.EmploymentStatus != nil && *filter.EmploymentStatus != "" {
		whereClause += fmt.Sprintf(" AND employment_status = $%d", argIndex)
		args = append(args, *filter.EmploymentStatus)
		argIndex++
	}

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM profiles %s`, whereClause)

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
		SELECT %s
		FROM profiles
		%s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, profileSelectColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.FullName,
			&p.Email,
			&p.Role,
			&p.Department,
			&p.EmploymentStatus,
			&p.HireDate,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}

	return profiles, total, nil
}

// ListActive implements profile.ProfileRepository.
func (r *profileRepositoryImpl) ListActive(ctx context.Context) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileSelectColumns + `
		FROM profiles
		WHERE employment_status = 'active'
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.FullName,
			&p.Email,
			&p.Role,
			&p.Department,
			&p.EmploymentStatus,
			&p.HireDate,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// Update implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, req profile.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Role != nil {
		updates = append(updates, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *req.Role)
		argIdx++
	}
	if req.Department != nil {
		updates = append(updates, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *req.Department)
		argIdx++
	}
	if req.EmploymentStatus != nil {
		updates = append(updates, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, *req.EmploymentStatus)
		argIdx++
	}
	if req.HireDate != nil {
		updates = append(updates, fmt.Sprintf("hire_date = $%d", argIdx))
		args = append(args, *req.HireDate)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIdx)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return profile.ErrProfileNotFound
	}
	return nil
}

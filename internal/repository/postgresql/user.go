package postgresql

import (
	"context"
	"errors"

	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelectColumns = `
	u.id, u.email, u.password_hash, u.oauth_provider, u.oauth_provider_id,
	u.created_at, u.updated_at,
	p.id AS profile_id, p.role
`

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.ProfileID,
		&found.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.ProfileID,
		&found.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, password_hash, oauth_provider, oauth_provider_id)
		VALUES (uuidv7(), $1, $2, $3, $4)
		RETURNING id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.PasswordHash,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
	).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.OAuthProvider,
		&created.OAuthProviderID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := q.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET oauth_provider = $1, oauth_provider_id = $2, updated_at = NOW()
		WHERE email = $3
		RETURNING id, email, password_hash, oauth_provider, oauth_provider_id, created_at, updated_at
	`

	var updated user.User
	err := q.QueryRow(ctx, query, "google", googleID, email).Scan(
		&updated.ID,
		&updated.Email,
		&updated.PasswordHash,
		&updated.OAuthProvider,
		&updated.OAuthProviderID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return updated, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

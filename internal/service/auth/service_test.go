package auth

import (
	"context"
	"testing"

	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, exists := f.users[id]
	if !exists {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, exists := f.users[userID]
	if !exists {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

type fakeJWTRepo struct {
	revokedUsers []string
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return nil
}

func (f *fakeJWTRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	return nil
}

const testUserID = "user-1"

func claimsContext(t *testing.T, jwtService jwt.Service) context.Context {
	t.Helper()
	tokenString, _, err := jwtService.GenerateAccessToken(testUserID, "user@example.com", "profile-1", user.RoleEmployee)
	require.NoError(t, err)

	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T, password string) (*AuthServiceImpl, *fakeUserRepo, *fakeJWTRepo, context.Context) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	passwordHash := string(hash)

	userRepo := &fakeUserRepo{users: map[string]user.User{
		testUserID: {ID: testUserID, Email: "user@example.com", PasswordHash: &passwordHash},
	}}
	jwtRepo := &fakeJWTRepo{}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	svc := NewAuthService(nil, userRepo, nil, jwtService, jwtRepo, nil).(*AuthServiceImpl)
	return svc, userRepo, jwtRepo, claimsContext(t, jwtService)
}

func TestChangePassword_ReplacesHashAndRevokesTokens(t *testing.T) {
	svc, userRepo, jwtRepo, ctx := newTestService(t, "old-password")
	before := *userRepo.users[testUserID].PasswordHash

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword:    "old-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "brand-new-password",
	})
	require.NoError(t, err)

	after := *userRepo.users[testUserID].PasswordHash
	assert.NotEqual(t, before, after)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after), []byte("brand-new-password")))
	assert.Equal(t, []string{testUserID}, jwtRepo.revokedUsers)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, userRepo, jwtRepo, ctx := newTestService(t, "old-password")
	before := *userRepo.users[testUserID].PasswordHash

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword:    "not-the-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "brand-new-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, before, *userRepo.users[testUserID].PasswordHash)
	assert.Empty(t, jwtRepo.revokedUsers)
}

func TestChangePassword_OAuthOnlyAccount(t *testing.T) {
	svc, userRepo, _, ctx := newTestService(t, "old-password")
	u := userRepo.users[testUserID]
	u.PasswordHash = nil
	userRepo.users[testUserID] = u

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword:    "anything",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "brand-new-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_MismatchedConfirmation(t *testing.T) {
	svc, _, jwtRepo, ctx := newTestService(t, "old-password")

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword:    "old-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "different-password",
	})
	assert.Error(t, err)
	assert.Empty(t, jwtRepo.revokedUsers)
}

package auth

import (
	"context"
)

type AuthService interface {
	// Register creates a user plus their profile in one transaction
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle returns the consent URL to redirect the browser to
	LoginWithGoogle(ctx context.Context) (string, error)

	// OAuthCallbackGoogle exchanges the code, provisioning a user and
	// profile on first login
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// ChangePassword verifies the current password, replaces the hash, and
	// revokes every outstanding refresh token for the caller
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	Logout(ctx context.Context, refreshToken string) error
}

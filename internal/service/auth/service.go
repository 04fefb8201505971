package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	profile.ProfileRepository
	jwt.Service
	postgresql.JWTRepository
	oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	profileRepository profile.ProfileRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		ProfileRepository: profileRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
		GoogleService:     googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. The user and their profile are
// created in one transaction so a half-registered account can never exist.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newUser, err := a.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &hashedPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		newProfile, err := a.ProfileRepository.Create(txCtx, profile.Profile{
			UserID:           newUser.ID,
			FullName:         req.FullName,
			Email:            req.Email,
			Role:             user.RoleEmployee,
			Department:       req.Department,
			EmploymentStatus: profile.StatusActive,
		})
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, newUser.ID, newUser.Email, newProfile.ID, newProfile.Role)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no password to compare
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var profileID string
		if userData.ProfileID != nil {
			profileID = *userData.ProfileID
		}

		tokenResponse, err = a.issueTokens(txCtx, userData.ID, userData.Email, profileID, userData.Role)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService. Returns the consent URL; the
// handler owns the state cookie.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context) (string, error) {
	state := a.GoogleService.GenerateState()
	if state == "" {
		return "", fmt.Errorf("failed to generate oauth state")
	}
	return a.GoogleService.RedirectURL(state), nil
}

// OAuthCallbackGoogle implements auth.AuthService. First-time Google logins
// provision a user and an employee profile named after the Google account.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	oauthToken, err := a.GoogleService.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	googleUser, err := a.GoogleService.FetchUser(ctx, oauthToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google account: %w", err)
	}

	userData, err := a.UserRepository.GetByEmail(ctx, googleUser.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if errors.Is(err, user.ErrUserNotFound) {
		err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			provider := "google"
			newUser, err := a.UserRepository.Create(txCtx, user.User{
				Email:           googleUser.Email,
				OAuthProvider:   &provider,
				OAuthProviderID: &googleUser.GoogleID,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			newProfile, err := a.ProfileRepository.Create(txCtx, profile.Profile{
				UserID:           newUser.ID,
				FullName:         googleUser.Name,
				Email:            googleUser.Email,
				Role:             user.RoleEmployee,
				EmploymentStatus: profile.StatusActive,
			})
			if err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}

			tokenResponse, err = a.issueTokens(txCtx, newUser.ID, newUser.Email, newProfile.ID, newProfile.Role)
			return err
		})
		if err != nil {
			return auth.TokenResponse{}, err
		}

		return tokenResponse, nil
	}

	// Existing account, link google identity on first oauth login
	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		if _, err := a.UserRepository.LinkGoogleAccount(ctx, googleUser.GoogleID, userData.Email); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var profileID string
		if userData.ProfileID != nil {
			profileID = *userData.ProfileID
		}

		tokenResponse, err = a.issueTokens(txCtx, userData.ID, userData.Email, profileID, userData.Role)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var response auth.AccessTokenResponse

	// Verify signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// Check the store for revocation; the raw token goes in, only its hash
	// is compared
	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	var profileID string
	if userData.ProfileID != nil {
		profileID = *userData.ProfileID
	}

	response.AccessToken, response.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email, profileID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return response, nil
}

// ChangePassword implements auth.AuthService. Every outstanding refresh
// token is revoked so stolen sessions die with the old password.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	// OAuth-only accounts carry no password to change
	if userData.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	newHash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.UserRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := a.JWTRepository.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// issueTokens generates an access/refresh pair and persists the refresh
// token hash. Callers run it inside a transaction context.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userID, email, profileID string, role user.Role) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userID, email, profileID, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, userID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	return tokenResponse, nil
}

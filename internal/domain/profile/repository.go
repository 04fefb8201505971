package profile

import (
	"context"
)

type ProfileRepository interface {
	// Create creates a profile for a user; fails on duplicate user_id
	Create(ctx context.Context, p Profile) (Profile, error)

	GetByID(ctx context.Context, id string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)

	// List retrieves profiles with filters and pagination
	List(ctx context.Context, filter ListProfilesFilter) ([]Profile, int64, error)

	// ListActive returns all profiles with active employment status.
	// Used by the absent-marking job.
	ListActive(ctx context.Context) ([]Profile, error)

	Update(ctx context.Context, req UpdateProfileRequest) error
}

type ProfileService interface {
	// GetMe returns the caller's own profile
	GetMe(ctx context.Context) (ProfileResponse, error)

	// List retrieves profiles (hr/admin)
	List(ctx context.Context, filter ListProfilesFilter) (ListProfilesResponse, error)

	// Get retrieves a single profile by ID (hr/admin)
	Get(ctx context.Context, id string) (ProfileResponse, error)

	// Update changes role/department/status fields (admin)
	Update(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
}

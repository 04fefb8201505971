package profile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/go-chi/jwtauth/v5"
)

type ProfileServiceImpl struct {
	profile.ProfileRepository
}

func NewProfileService(profileRepository profile.ProfileRepository) profile.ProfileService {
	return &ProfileServiceImpl{ProfileRepository: profileRepository}
}

// GetMe implements profile.ProfileService.
func (s *ProfileServiceImpl) GetMe(ctx context.Context) (profile.ProfileResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	profileID, ok := claims["profile_id"].(string)
	if !ok || profileID == "" {
		return profile.ProfileResponse{}, fmt.Errorf("profile_id claim is missing or invalid")
	}

	found, err := s.ProfileRepository.GetByID(ctx, profileID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return toProfileResponse(found), nil
}

// List implements profile.ProfileService.
func (s *ProfileServiceImpl) List(ctx context.Context, filter profile.ListProfilesFilter) (profile.ListProfilesResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	profiles, total, err := s.ProfileRepository.List(ctx, filter)
	if err != nil {
		return profile.ListProfilesResponse{}, fmt.Errorf("failed to list profiles: %w", err)
	}

	responses := make([]profile.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, toProfileResponse(p))
	}

	return profile.ListProfilesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Profiles:   responses,
	}, nil
}

// Get implements profile.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context, id string) (profile.ProfileResponse, error) {
	found, err := s.ProfileRepository.GetByID(ctx, id)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	return toProfileResponse(found), nil
}

// Update implements profile.ProfileService.
func (s *ProfileServiceImpl) Update(ctx context.Context, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	if err := s.ProfileRepository.Update(ctx, req); err != nil {
		return profile.ProfileResponse{}, err
	}

	updated, err := s.ProfileRepository.GetByID(ctx, req.ID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return toProfileResponse(updated), nil
}

func toProfileResponse(p profile.Profile) profile.ProfileResponse {
	response := profile.ProfileResponse{
		ID:               p.ID,
		FullName:         p.FullName,
		Email:            p.Email,
		Role:             string(p.Role),
		Department:       p.Department,
		EmploymentStatus: string(p.EmploymentStatus),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}

	if p.HireDate != nil {
		hireDate := p.HireDate.Format("2006-01-02")
		response.HireDate = &hireDate
	}

	return response
}

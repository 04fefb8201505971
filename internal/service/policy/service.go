package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/go-chi/jwtauth/v5"
)

type PolicyServiceImpl struct {
	policy.PolicyRepository
}

func NewPolicyService(policyRepository policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{PolicyRepository: policyRepository}
}

// Get implements policy.PolicyService.
func (s *PolicyServiceImpl) Get(ctx context.Context) (policy.PolicyResponse, error) {
	current, err := s.PolicyRepository.Get(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}
	return toPolicyResponse(current), nil
}

// Update implements policy.PolicyService. The new policy takes effect for
// classifications made after the write; existing records keep the status
// they were given at check-in time.
func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var updatedBy *string
	if profileID, ok := claims["profile_id"].(string); ok && profileID != "" {
		updatedBy = &profileID
	}

	saved, err := s.PolicyRepository.Upsert(ctx, policy.Policy{
		OfficeStartTime:      req.OfficeStartTime,
		OfficeEndTime:        req.OfficeEndTime,
		GraceMinutes:         req.GraceMinutes,
		LateMarkAfterMinutes: req.LateMarkAfterMinutes,
		UpdatedBy:            updatedBy,
	})
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to save policy: %w", err)
	}

	return toPolicyResponse(saved), nil
}

func toPolicyResponse(p policy.Policy) policy.PolicyResponse {
	return policy.PolicyResponse{
		OfficeStartTime:      p.OfficeStartTime,
		OfficeEndTime:        p.OfficeEndTime,
		GraceMinutes:         p.GraceMinutes,
		LateMarkAfterMinutes: p.LateMarkAfterMinutes,
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}
}

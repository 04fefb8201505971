package policy

import (
	"context"
)

type PolicyRepository interface {
	// Get returns the singleton policy record
	Get(ctx context.Context) (Policy, error)

	// Upsert replaces the singleton policy record, creating it when absent
	Upsert(ctx context.Context, p Policy) (Policy, error)
}

type PolicyService interface {
	Get(ctx context.Context) (PolicyResponse, error)

	// Update replaces the policy (admin only, enforced at the route level)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
}

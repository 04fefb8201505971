package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// List retrieves leave requests with filters and pagination
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// HasOverlapping reports whether the profile already has a pending or
	// approved request sharing a day with [start, end]
	HasOverlapping(ctx context.Context, profileID string, start, end time.Time) (bool, error)

	// Decide transitions a pending request to approved/rejected with a
	// status='pending' predicate so concurrent deciders cannot both win.
	// Returns false when the request was not pending anymore.
	Decide(ctx context.Context, id string, status LeaveStatus, approverID string, remarks *string, decidedAt time.Time) (bool, error)

	// UpdateRemarks changes remarks only; valid in any status
	UpdateRemarks(ctx context.Context, id string, remarks string) error

	// ListForRange returns requests overlapping [from, to] for a profile,
	// or for every profile when profileID is nil. Feeds the aggregator.
	ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]LeaveRequest, error)
}

type LeaveService interface {
	// Create submits a leave request for the caller
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// GetMyLeaves retrieves the caller's leave requests
	GetMyLeaves(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)

	// List retrieves leave requests across profiles (hr/admin)
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)

	Get(ctx context.Context, id string) (LeaveResponse, error)

	// Approve transitions a pending request to approved (hr/admin)
	Approve(ctx context.Context, req DecideLeaveRequest) (LeaveResponse, error)

	// Reject transitions a pending request to rejected (hr/admin)
	Reject(ctx context.Context, req DecideLeaveRequest) (LeaveResponse, error)

	// UpdateRemarks edits remarks on a decided request (hr/admin)
	UpdateRemarks(ctx context.Context, req UpdateRemarksRequest) (LeaveResponse, error)
}

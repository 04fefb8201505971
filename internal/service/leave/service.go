package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository

	// allowOverlap permits overlapping pending/approved requests per profile
	allowOverlap bool

	// now is swapped out in tests
	now func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveRepository leave.LeaveRequestRepository,
	allowOverlap bool,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRepository,
		allowOverlap:           allowOverlap,
		now:                    time.Now,
	}
}

func profileIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	profileID, ok := claims["profile_id"].(string)
	if !ok || profileID == "" {
		return "", fmt.Errorf("profile_id claim is missing or invalid")
	}

	return profileID, nil
}

// Create implements leave.LeaveService. Requests start pending; total_days
// spans the inclusive date range.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	profileID, err := profileIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	if !s.allowOverlap {
		overlapping, err := s.LeaveRequestRepository.HasOverlapping(ctx, profileID, startDate, endDate)
		if err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlapping {
			return leave.LeaveResponse{}, leave.ErrOverlappingLeave
		}
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ProfileID: profileID,
		LeaveType: leave.LeaveType(req.LeaveType),
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: leave.CountDays(startDate, endDate),
		Reason:    req.Reason,
		Status:    leave.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toLeaveResponse(created), nil
}

// GetMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	profileID, err := profileIDFromClaims(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	filter.ProfileID = &profileID

	return s.list(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toLeaveResponse(req))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Leaves:     responses,
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toLeaveResponse(request), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.LeaveStatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.LeaveStatusRejected)
}

// decide runs the pending -> approved/rejected transition. The repository
// update carries a pending-only predicate, so of two concurrent deciders
// exactly one wins and the loser sees the request as already processed.
func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequest, status leave.LeaveStatus) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	approverID, err := profileIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	current, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if !leave.CanTransition(current.Status, status) {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	won, err := s.LeaveRequestRepository.Decide(ctx, req.ID, status, approverID, req.Remarks, s.now())
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}
	if !won {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	decided, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(decided), nil
}

// UpdateRemarks implements leave.LeaveService. Remarks stay editable after a
// decision; everything else on a decided request is immutable.
func (s *LeaveServiceImpl) UpdateRemarks(ctx context.Context, req leave.UpdateRemarksRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := s.LeaveRequestRepository.UpdateRemarks(ctx, req.ID, req.Remarks); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(updated), nil
}

func toLeaveResponse(request leave.LeaveRequest) leave.LeaveResponse {
	response := leave.LeaveResponse{
		ID:           request.ID,
		ProfileID:    request.ProfileID,
		LeaveType:    string(request.LeaveType),
		StartDate:    request.StartDate.Format("2006-01-02"),
		EndDate:      request.EndDate.Format("2006-01-02"),
		TotalDays:    request.TotalDays,
		Reason:       request.Reason,
		Status:       string(request.Status),
		ApprovedBy:   request.ApprovedBy,
		ApproverName: request.ApproverName,
		Remarks:      request.Remarks,
		CreatedAt:    request.CreatedAt.Format(time.RFC3339),
	}

	if request.ProfileName != nil {
		response.ProfileName = *request.ProfileName
	}
	if request.ApprovedAt != nil {
		approvedAt := request.ApprovedAt.Format(time.RFC3339)
		response.ApprovedAt = &approvedAt
	}

	return response
}

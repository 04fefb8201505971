package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("leave-%d", f.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, exists := f.requests[id]
	if !exists {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.ProfileID != nil && request.ProfileID != *filter.ProfileID {
			continue
		}
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) HasOverlapping(ctx context.Context, profileID string, start, end time.Time) (bool, error) {
	for _, request := range f.requests {
		if request.ProfileID != profileID {
			continue
		}
		if request.Status == leave.LeaveStatusRejected {
			continue
		}
		if leave.Overlaps(request.StartDate, request.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) Decide(ctx context.Context, id string, status leave.LeaveStatus, approverID string, remarks *string, decidedAt time.Time) (bool, error) {
	request, exists := f.requests[id]
	if !exists || request.Status != leave.LeaveStatusPending {
		return false, nil
	}
	request.Status = status
	request.ApprovedBy = &approverID
	request.ApprovedAt = &decidedAt
	if remarks != nil {
		request.Remarks = remarks
	}
	f.requests[id] = request
	return true, nil
}

func (f *fakeLeaveRepo) UpdateRemarks(ctx context.Context, id string, remarks string) error {
	request, exists := f.requests[id]
	if !exists {
		return leave.ErrLeaveRequestNotFound
	}
	request.Remarks = &remarks
	f.requests[id] = request
	return nil
}

func (f *fakeLeaveRepo) ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if profileID != nil && request.ProfileID != *profileID {
			continue
		}
		if leave.Overlaps(request.StartDate, request.EndDate, from, to) {
			out = append(out, request)
		}
	}
	return out, nil
}

func claimsContext(t *testing.T, profileID string) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	tokenString, _, err := jwtService.GenerateAccessToken("user-1", "user@example.com", profileID, "hr")
	require.NoError(t, err)

	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeLeaveRepo, allowOverlap bool) *LeaveServiceImpl {
	svc := NewLeaveService(nil, repo, allowOverlap).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreate_ComputesTotalDays(t *testing.T) {
	ctx := claimsContext(t, "profile-1")
	svc := newTestService(newFakeLeaveRepo(), false)

	response, err := svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "casual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "family event",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, response.TotalDays)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, "profile-1", response.ProfileID)
}

func TestCreate_SingleDay(t *testing.T) {
	ctx := claimsContext(t, "profile-1")
	svc := newTestService(newFakeLeaveRepo(), false)

	response, err := svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "sick",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-01",
		Reason:    "fever",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalDays)
}

func TestCreate_RejectsOverlap(t *testing.T) {
	ctx := claimsContext(t, "profile-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, false)

	_, err := svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "casual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-05",
		Reason:    "trip",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "earned",
		StartDate: "2025-04-05",
		EndDate:   "2025-04-08",
		Reason:    "extension",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreate_AllowsOverlapWhenConfigured(t *testing.T) {
	ctx := claimsContext(t, "profile-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, true)

	_, err := svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "casual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-05",
		Reason:    "trip",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "earned",
		StartDate: "2025-04-05",
		EndDate:   "2025-04-08",
		Reason:    "extension",
	})
	assert.NoError(t, err)
}

func TestCreate_OverlapIgnoresRejected(t *testing.T) {
	ctx := claimsContext(t, "profile-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, false)

	created, err := svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "casual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-05",
		Reason:    "trip",
	})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, leave.DecideLeaveRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, leave.CreateLeaveRequest{
		LeaveType: "earned",
		StartDate: "2025-04-03",
		EndDate:   "2025-04-06",
		Reason:    "retry",
	})
	assert.NoError(t, err)
}

func TestApprove_SetsDecisionFields(t *testing.T) {
	ctx := claimsContext(t, "approver-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, false)

	created, err := repo.Create(context.Background(), leave.LeaveRequest{
		ProfileID: "profile-2",
		LeaveType: leave.LeaveTypeCasual,
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		TotalDays: 2,
		Reason:    "trip",
		Status:    leave.LeaveStatusPending,
	})
	require.NoError(t, err)

	remarks := "enjoy"
	response, err := svc.Approve(ctx, leave.DecideLeaveRequest{ID: created.ID, Remarks: &remarks})
	require.NoError(t, err)

	assert.Equal(t, "approved", response.Status)
	require.NotNil(t, response.ApprovedBy)
	assert.Equal(t, "approver-1", *response.ApprovedBy)
	assert.NotNil(t, response.ApprovedAt)
	require.NotNil(t, response.Remarks)
	assert.Equal(t, "enjoy", *response.Remarks)

	// Everything else stays as submitted
	assert.Equal(t, 2, response.TotalDays)
	assert.Equal(t, "trip", response.Reason)
	assert.Equal(t, "profile-2", response.ProfileID)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	ctx := claimsContext(t, "approver-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, false)

	created, err := repo.Create(context.Background(), leave.LeaveRequest{
		ProfileID: "profile-2",
		LeaveType: leave.LeaveTypeSick,
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalDays: 1,
		Reason:    "fever",
		Status:    leave.LeaveStatusPending,
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leave.DecideLeaveRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, leave.DecideLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestUpdateRemarks_AfterDecision(t *testing.T) {
	ctx := claimsContext(t, "approver-1")
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, false)

	created, err := repo.Create(context.Background(), leave.LeaveRequest{
		ProfileID: "profile-2",
		LeaveType: leave.LeaveTypeEarned,
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		TotalDays: 2,
		Reason:    "vacation",
		Status:    leave.LeaveStatusPending,
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leave.DecideLeaveRequest{ID: created.ID})
	require.NoError(t, err)

	response, err := svc.UpdateRemarks(ctx, leave.UpdateRemarksRequest{ID: created.ID, Remarks: "added note"})
	require.NoError(t, err)

	require.NotNil(t, response.Remarks)
	assert.Equal(t, "added note", *response.Remarks)
	assert.Equal(t, "approved", response.Status)
}

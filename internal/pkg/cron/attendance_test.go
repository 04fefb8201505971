package cron

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	absents map[string]bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{absents: make(map[string]bool)}
}

func (f *fakeAttendanceRepo) InsertAbsent(ctx context.Context, profileID string, date time.Time) (bool, error) {
	key := profileID + "|" + date.Format("2006-01-02")
	if f.absents[key] {
		return false, nil
	}
	f.absents[key] = true
	return true, nil
}

type fakeProfileRepo struct {
	profile.ProfileRepository
	active []profile.Profile
}

func (f *fakeProfileRepo) ListActive(ctx context.Context) ([]profile.Profile, error) {
	return f.active, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRepo) ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return f.requests, nil
}

type fakePolicyRepo struct {
	policy.PolicyRepository
}

func (f *fakePolicyRepo) Get(ctx context.Context) (policy.Policy, error) {
	return policy.Policy{
		OfficeStartTime:      "09:00",
		OfficeEndTime:        "17:00",
		GraceMinutes:         15,
		LateMarkAfterMinutes: 30,
	}, nil
}

func newTestJobs(attendanceRepo *fakeAttendanceRepo, profileRepo *fakeProfileRepo, leaveRepo *fakeLeaveRepo, nowLocal time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(attendanceRepo, profileRepo, leaveRepo, &fakePolicyRepo{}, time.UTC, time.Minute)
	jobs.now = func() time.Time { return nowLocal }
	return jobs
}

func TestMarkAbsentProfiles_AfterOfficeEnd(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	profileRepo := &fakeProfileRepo{active: []profile.Profile{{ID: "profile-1"}, {ID: "profile-2"}}}
	jobs := newTestJobs(attendanceRepo, profileRepo, &fakeLeaveRepo{}, time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC))

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	assert.True(t, attendanceRepo.absents["profile-1|2025-03-10"])
	assert.True(t, attendanceRepo.absents["profile-2|2025-03-10"])
}

func TestMarkAbsentProfiles_BeforeOfficeEndIsNoOp(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	profileRepo := &fakeProfileRepo{active: []profile.Profile{{ID: "profile-1"}}}
	jobs := newTestJobs(attendanceRepo, profileRepo, &fakeLeaveRepo{}, time.Date(2025, 3, 10, 16, 59, 0, 0, time.UTC))

	require.NoError(t, jobs.MarkAbsentProfiles(context.Background()))

	assert.Empty(t, attendanceRepo.absents)
}

func TestMarkAbsentProfiles_SkipsApprovedLeave(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	profileRepo := &fakeProfileRepo{active: []profile.Profile{{ID: "profile-1"}, {ID: "profile-2"}}}
	leaveRepo := &fakeLeaveRepo{requests: []leave.LeaveRequest{
		{ProfileID: "profile-1", Status: leave.LeaveStatusApproved},
		{ProfileID: "profile-2", Status: leave.LeaveStatusPending},
	}}
	jobs := newTestJobs(attendanceRepo, profileRepo, leaveRepo, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.MarkAbsentProfiles(context.Background()))

	assert.False(t, attendanceRepo.absents["profile-1|2025-03-10"])
	assert.True(t, attendanceRepo.absents["profile-2|2025-03-10"])
}

func TestMarkAbsentProfiles_RerunIsIdempotent(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	profileRepo := &fakeProfileRepo{active: []profile.Profile{{ID: "profile-1"}}}
	jobs := newTestJobs(attendanceRepo, profileRepo, &fakeLeaveRepo{}, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.MarkAbsentProfiles(context.Background()))
	require.NoError(t, jobs.MarkAbsentProfiles(context.Background()))

	assert.Len(t, attendanceRepo.absents, 1)
}

package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo keeps records in memory and enforces the
// one-record-per-profile-per-day rule the way the unique constraint does.
type fakeAttendanceRepo struct {
	records map[string]attendance.Record // keyed by profileID + date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func recordKey(profileID string, date time.Time) string {
	return profileID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	key := recordKey(record.ProfileID, record.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	record.ID = recordKey(record.ProfileID, record.Date)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[key] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*attendance.Record, error) {
	if record, exists := f.records[recordKey(profileID, date)]; exists {
		return &record, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	for key, existing := range f.records {
		if existing.ID == record.ID {
			f.records[key] = record
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByProfile(ctx context.Context, profileID string, filter attendance.MyAttendanceFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, record := range f.records {
		if record.ProfileID == profileID {
			out = append(out, record)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, record := range f.records {
		if profileID != nil && record.ProfileID != *profileID {
			continue
		}
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) InsertAbsent(ctx context.Context, profileID string, date time.Time) (bool, error) {
	key := recordKey(profileID, date)
	if _, exists := f.records[key]; exists {
		return false, nil
	}
	f.records[key] = attendance.Record{
		ID:        key,
		ProfileID: profileID,
		Date:      date,
		Status:    attendance.StatusAbsent,
	}
	return true, nil
}

type fakePolicyRepo struct {
	policy policy.Policy
}

func (f *fakePolicyRepo) Get(ctx context.Context) (policy.Policy, error) {
	return f.policy, nil
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	f.policy = p
	return p, nil
}

const testProfileID = "profile-1"

func claimsContext(t *testing.T) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	tokenString, _, err := jwtService.GenerateAccessToken("user-1", "user@example.com", testProfileID, "employee")
	require.NoError(t, err)

	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	policyRepo := &fakePolicyRepo{policy: policy.Policy{
		OfficeStartTime:      "09:00",
		OfficeEndTime:        "17:00",
		GraceMinutes:         15,
		LateMarkAfterMinutes: 15,
	}}

	svc := NewAttendanceService(nil, repo, policyRepo, time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestCheckIn_OnTime(t *testing.T) {
	ctx := claimsContext(t)
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC))

	response, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, "present", response.Status)
	assert.Equal(t, "2025-03-10", response.Date)
	assert.Nil(t, response.LateMinutes)
	assert.False(t, response.LateMark)
}

func TestCheckIn_Late(t *testing.T) {
	ctx := claimsContext(t)
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))

	response, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	assert.Equal(t, "late", response.Status)
	require.NotNil(t, response.LateMinutes)
	assert.Equal(t, 30, *response.LateMinutes)
	assert.True(t, response.LateMark)
}

func TestCheckIn_Duplicate(t *testing.T) {
	ctx := claimsContext(t)
	firstCheckIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, firstCheckIn)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	// A rejected retry later the same day must leave the first record alone
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC) }

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	stored, err := repo.GetByProfileAndDate(context.Background(), testProfileID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.CheckIn)
	assert.True(t, stored.CheckIn.Equal(firstCheckIn))
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestCheckOut_ComputesHours(t *testing.T) {
	ctx := claimsContext(t)
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC))

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC) }

	response, err := svc.CheckOut(ctx)
	require.NoError(t, err)

	require.NotNil(t, response.TotalHours)
	assert.InDelta(t, 8.4167, *response.TotalHours, 0.0001)
	assert.NotNil(t, response.CheckOut)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	ctx := claimsContext(t)
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_OnAbsentRecord(t *testing.T) {
	ctx := claimsContext(t)
	svc, repo := newTestService(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	_, err := repo.InsertAbsent(context.Background(), testProfileID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	ctx := claimsContext(t)
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckIn_NextDayAfterAbsent(t *testing.T) {
	ctx := claimsContext(t)
	svc, repo := newTestService(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))

	// Yesterday's absent record must not block today's check-in
	_, err := repo.InsertAbsent(context.Background(), testProfileID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	response, err := svc.CheckIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "present", response.Status)
}

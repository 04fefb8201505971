package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/domain/profile"
)

// AttendanceJobs marks active employees absent when the workday ends without
// a check-in. The job runs on a short interval and no-ops until office end
// time has passed; the UNIQUE(profile_id, date) constraint makes repeated
// runs for the same day harmless.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	profileRepo    profile.ProfileRepository
	leaveRepo      leave.LeaveRequestRepository
	policyRepo     policy.PolicyRepository
	location       *time.Location
	interval       time.Duration

	// now is swapped out in tests
	now func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	profileRepo profile.ProfileRepository,
	leaveRepo leave.LeaveRequestRepository,
	policyRepo policy.PolicyRepository,
	location *time.Location,
	interval time.Duration,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		profileRepo:    profileRepo,
		leaveRepo:      leaveRepo,
		policyRepo:     policyRepo,
		location:       location,
		interval:       interval,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_profiles", j.interval, j.MarkAbsentProfiles)
}

// MarkAbsentProfiles inserts absent records for every active profile without
// an attendance record today, once the office day is over. Profiles covered
// by an approved leave request are skipped.
func (j *AttendanceJobs) MarkAbsentProfiles(ctx context.Context) error {
	nowLocal := j.now().In(j.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.location)

	companyPolicy, err := j.policyRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load company policy: %w", err)
	}

	// Not end of day yet
	if nowLocal.Before(companyPolicy.EndOn(today)) {
		return nil
	}

	slog.Info("Cron: Starting mark absent profiles job", "date", today.Format("2006-01-02"))

	profiles, err := j.profileRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active profiles: %w", err)
	}

	onLeave, err := j.profilesOnApprovedLeave(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list approved leaves: %w", err)
	}

	markedCount := 0
	for _, p := range profiles {
		if onLeave[p.ID] {
			continue
		}

		inserted, err := j.attendanceRepo.InsertAbsent(ctx, p.ID, today)
		if err != nil {
			slog.Error("Cron: Failed to mark profile absent",
				"profile_id", p.ID,
				"date", today.Format("2006-01-02"),
				"error", err)
			continue
		}
		if inserted {
			markedCount++
		}
	}

	if markedCount > 0 {
		slog.Info("Cron: Marked profiles absent", "count", markedCount, "date", today.Format("2006-01-02"))
	}
	return nil
}

func (j *AttendanceJobs) profilesOnApprovedLeave(ctx context.Context, date time.Time) (map[string]bool, error) {
	requests, err := j.leaveRepo.ListForRange(ctx, nil, date, date)
	if err != nil {
		return nil, err
	}

	onLeave := make(map[string]bool, len(requests))
	for _, req := range requests {
		if req.Status == leave.LeaveStatusApproved {
			onLeave[req.ProfileID] = true
		}
	}
	return onLeave, nil
}

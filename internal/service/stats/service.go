package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/domain/stats"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

// StatsServiceImpl fetches raw rows and reduces them in memory with the
// pure summarizers, so the dashboard math stays testable without a database.
type StatsServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository

	// now is swapped out in tests
	now func() time.Time
}

func NewStatsService(
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRequestRepository,
) stats.StatsService {
	return &StatsServiceImpl{
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRepository,
		now:                    time.Now,
	}
}

// scopeProfileID restricts employees to their own summary. hr/admin may pass
// any profile ID, or none for the company-wide view.
func scopeProfileID(ctx context.Context, requested *string) (*string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return nil, user.ErrInvalidRole
	}

	if role == user.RoleEmployee {
		profileID, ok := claims["profile_id"].(string)
		if !ok || profileID == "" {
			return nil, fmt.Errorf("profile_id claim is missing or invalid")
		}
		return &profileID, nil
	}

	return requested, nil
}

// AttendanceSummary implements stats.StatsService.
func (s *StatsServiceImpl) AttendanceSummary(ctx context.Context, month string, profileID *string) (stats.AttendanceSummary, error) {
	monthStart, ok := validator.IsValidMonth(month)
	if !ok {
		return stats.AttendanceSummary{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}

	scoped, err := scopeProfileID(ctx, profileID)
	if err != nil {
		return stats.AttendanceSummary{}, err
	}

	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListForRange(ctx, scoped, monthStart, monthEnd)
	if err != nil {
		return stats.AttendanceSummary{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	summary := stats.SummarizeAttendance(records)
	summary.Month = month
	summary.ProfileID = scoped

	return summary, nil
}

// LeaveSummary implements stats.StatsService.
func (s *StatsServiceImpl) LeaveSummary(ctx context.Context, startDate, endDate *string, profileID *string) (stats.LeaveSummary, error) {
	scoped, err := scopeProfileID(ctx, profileID)
	if err != nil {
		return stats.LeaveSummary{}, err
	}

	// Unbounded sides fall back to a range wide enough to cover everything
	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	to := s.now().AddDate(10, 0, 0)

	if startDate != nil && *startDate != "" {
		parsed, ok := validator.IsValidDate(*startDate)
		if !ok {
			return stats.LeaveSummary{}, validator.ValidationErrors{{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			}}
		}
		from = parsed
	}

	if endDate != nil && *endDate != "" {
		parsed, ok := validator.IsValidDate(*endDate)
		if !ok {
			return stats.LeaveSummary{}, validator.ValidationErrors{{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			}}
		}
		to = parsed
	}

	requests, err := s.LeaveRequestRepository.ListForRange(ctx, scoped, from, to)
	if err != nil {
		return stats.LeaveSummary{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	summary := stats.SummarizeLeave(requests)
	summary.ProfileID = scoped

	return summary, nil
}

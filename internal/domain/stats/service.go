package stats

import "context"

// StatsService computes aggregate summaries for dashboards.
type StatsService interface {
	// AttendanceSummary reduces one month of attendance records.
	// Employees get their own summary; hr/admin may pass a profile ID or
	// omit it for the company-wide view.
	AttendanceSummary(ctx context.Context, month string, profileID *string) (AttendanceSummary, error)

	// LeaveSummary reduces leave requests over an optional date range
	LeaveSummary(ctx context.Context, startDate, endDate *string, profileID *string) (LeaveSummary, error)
}

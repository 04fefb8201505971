package stats

import (
	"math"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
)

// SummarizeAttendance reduces a set of attendance records into per-status
// counts and hour totals. The reduction is commutative, so record order does
// not matter. Average hours divide by present days only; zero present days
// yields a zero average.
func SummarizeAttendance(records []attendance.Record) AttendanceSummary {
	var s AttendanceSummary

	for _, r := range records {
		s.TotalRecords++
		switch r.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
		if r.LateMark {
			s.LateMarks++
		}
		if r.TotalHours != nil {
			s.TotalHours += *r.TotalHours
		}
	}

	s.TotalHours = round4(s.TotalHours)
	if s.PresentDays > 0 {
		s.AverageHours = round4(s.TotalHours / float64(s.PresentDays))
	}

	return s
}

// SummarizeLeave reduces leave requests into per-status counts. Approved days
// sum total_days over approved requests only.
func SummarizeLeave(requests []leave.LeaveRequest) LeaveSummary {
	var s LeaveSummary

	for _, r := range requests {
		s.TotalRequests++
		switch r.Status {
		case leave.LeaveStatusPending:
			s.Pending++
		case leave.LeaveStatusApproved:
			s.Approved++
			s.ApprovedDays += r.TotalDays
		case leave.LeaveStatusRejected:
			s.Rejected++
		}
	}

	return s
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

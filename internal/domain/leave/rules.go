package leave

import (
	"time"
)

// CountDays is the inclusive number of calendar days in [start, end].
// Both bounds are truncated to their calendar date before counting, so
// time-of-day and zone offsets cannot skew the result.
func CountDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// CanTransition reports whether a request in the current status may move to
// the target status. Only pending requests move, and only to a decision.
func CanTransition(from, to LeaveStatus) bool {
	if from != LeaveStatusPending {
		return false
	}
	return to == LeaveStatusApproved || to == LeaveStatusRejected
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

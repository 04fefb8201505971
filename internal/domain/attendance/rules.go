package attendance

import (
	"math"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/policy"
)

// Classification is the outcome of evaluating a check-in against company policy.
type Classification struct {
	Status      Status
	LateMinutes int
	LateMark    bool
}

// Classify derives the attendance status for a check-in. A check-in within
// office_start_time + grace_minutes is present; anything after is late, with
// late minutes counted from the official start. Check-ins past
// late_mark_after_minutes additionally earn a formal late mark.
func Classify(p policy.Policy, checkIn time.Time) Classification {
	start := p.StartOn(checkIn)

	if !checkIn.After(p.GraceDeadlineOn(checkIn)) {
		return Classification{Status: StatusPresent}
	}

	lateMinutes := int(math.Floor(checkIn.Sub(start).Minutes()))

	return Classification{
		Status:      StatusLate,
		LateMinutes: lateMinutes,
		LateMark:    checkIn.After(p.LateMarkDeadlineOn(checkIn)),
	}
}

// WorkedHours is the fractional hours between check-in and check-out,
// rounded to four decimal places.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	return math.Round(hours*10000) / 10000
}

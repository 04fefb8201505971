package policy

import (
	"time"
)

// Policy is the company-wide singleton attendance policy. Office times are
// stored as "HH:MM" wall-clock strings and anchored to a concrete date when
// evaluated.
type Policy struct {
	ID                   int
	OfficeStartTime      string
	OfficeEndTime        string
	GraceMinutes         int
	LateMarkAfterMinutes int
	UpdatedBy            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// StartOn anchors office_start_time to the given calendar date.
func (p Policy) StartOn(date time.Time) time.Time {
	return anchorClock(p.OfficeStartTime, date)
}

// EndOn anchors office_end_time to the given calendar date.
func (p Policy) EndOn(date time.Time) time.Time {
	return anchorClock(p.OfficeEndTime, date)
}

// GraceDeadlineOn is the last instant a check-in still counts as on time.
func (p Policy) GraceDeadlineOn(date time.Time) time.Time {
	return p.StartOn(date).Add(time.Duration(p.GraceMinutes) * time.Minute)
}

// LateMarkDeadlineOn is the instant after which a check-in earns a formal late mark.
func (p Policy) LateMarkDeadlineOn(date time.Time) time.Time {
	return p.StartOn(date).Add(time.Duration(p.LateMarkAfterMinutes) * time.Minute)
}

func anchorClock(clock string, date time.Time) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		// Invalid clock strings are rejected at the DTO layer; fall back to midnight.
		t = time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Record is one attendance row per (profile, calendar date).
type Record struct {
	ID          string
	ProfileID   string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	Status      Status
	TotalHours  *float64
	LateMinutes *int
	LateMark    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	ProfileName *string
	Department  *string
}

package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The store
// enforces UNIQUE(profile_id, date); Create surfaces a violation as
// ErrAlreadyCheckedIn.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByProfileAndDate returns nil when no record exists for that day
	GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*Record, error)

	Update(ctx context.Context, record Record) error

	// List retrieves attendance records with filters and pagination (hr/admin)
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListByProfile retrieves attendance records for one profile
	ListByProfile(ctx context.Context, profileID string, filter MyAttendanceFilter) ([]Record, int64, error)

	// ListForRange returns all records in [from, to] for a profile, or for
	// every profile when profileID is nil. Feeds the aggregator.
	ListForRange(ctx context.Context, profileID *string, from, to time.Time) ([]Record, error)

	// InsertAbsent writes an absent record for (profile, date) if none exists.
	// Reports whether a row was actually inserted.
	InsertAbsent(ctx context.Context, profileID string, date time.Time) (bool, error)
}

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the caller's check-in for today, classifying the
	// status against company policy
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's open record and computes total hours
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// GetMyAttendance retrieves the caller's attendance history
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// List retrieves attendance records across profiles (hr/admin)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Get retrieves a single record by ID (hr/admin)
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Update corrects a record's clock times or status (hr/admin)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}

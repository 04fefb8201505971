package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out cannot be before check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

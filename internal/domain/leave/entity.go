package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeEarned LeaveType = "earned"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRequest entity. Once approved or rejected the request is immutable
// except for remarks.
type LeaveRequest struct {
	ID        string
	ProfileID string
	LeaveType LeaveType

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason string

	Status     LeaveStatus
	ApprovedBy *string
	ApprovedAt *time.Time
	Remarks    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	ProfileName  *string
	ApproverName *string
}

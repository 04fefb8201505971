package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave             = errors.New("an approved or pending leave already covers this period")
	ErrInvalidDateRange             = errors.New("start date must not be after end date")
)

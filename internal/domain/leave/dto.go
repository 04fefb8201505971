package leave

import (
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type LeaveResponse struct {
	ID           string  `json:"id"`
	ProfileID    string  `json:"profile_id"`
	ProfileName  string  `json:"profile_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApproverName *string `json:"approver_name,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	validTypes := []string{string(LeaveTypeCasual), string(LeaveTypeSick), string(LeaveTypeEarned)}
	if !validator.IsInSlice(r.LeaveType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: casual, sick, earned",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecideLeaveRequest carries an approve or reject decision on a pending request.
type DecideLeaveRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_id",
			Message: "leave_request_id is required",
		})
	}

	if r.Remarks != nil && len(*r.Remarks) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRemarksRequest updates remarks on an already-decided request; all
// other fields stay immutable after the decision.
type UpdateRemarksRequest struct {
	ID      string `json:"-"`
	Remarks string `json:"remarks"`
}

func (r *UpdateRemarksRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_id",
			Message: "leave_request_id is required",
		})
	}

	if len(r.Remarks) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	ProfileID *string
	LeaveType *string
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.LeaveType != nil && *f.LeaveType != "" {
		validTypes := []string{string(LeaveTypeCasual), string(LeaveTypeSick), string(LeaveTypeEarned)}
		if !validator.IsInSlice(*f.LeaveType, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type must be one of: casual, sick, earned",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		validStatuses := []string{string(LeaveStatusPending), string(LeaveStatusApproved), string(LeaveStatusRejected)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Leaves     []LeaveResponse `json:"leaves"`
}

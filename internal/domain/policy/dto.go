package policy

import (
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type PolicyResponse struct {
	OfficeStartTime      string `json:"office_start_time"`
	OfficeEndTime        string `json:"office_end_time"`
	GraceMinutes         int    `json:"grace_minutes"`
	LateMarkAfterMinutes int    `json:"late_mark_after_minutes"`
	UpdatedAt            string `json:"updated_at"`
}

type UpdatePolicyRequest struct {
	OfficeStartTime      string `json:"office_start_time"`
	OfficeEndTime        string `json:"office_end_time"`
	GraceMinutes         int    `json:"grace_minutes"`
	LateMarkAfterMinutes int    `json:"late_mark_after_minutes"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidClockTime(r.OfficeStartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "office_start_time",
			Message: "office_start_time must be a valid time in HH:MM format",
		})
	}

	end, endOK := validator.IsValidClockTime(r.OfficeEndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "office_end_time",
			Message: "office_end_time must be a valid time in HH:MM format",
		})
	}

	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_end_time",
			Message: "office_end_time must be after office_start_time",
		})
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if r.LateMarkAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_mark_after_minutes",
			Message: "late_mark_after_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

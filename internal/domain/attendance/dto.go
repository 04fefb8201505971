package attendance

import (
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID          string   `json:"id"`
	ProfileID   string   `json:"profile_id"`
	ProfileName string   `json:"profile_name,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Date        string   `json:"date"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	Status      string   `json:"status"`
	TotalHours  *float64 `json:"total_hours,omitempty"`
	LateMinutes *int     `json:"late_minutes,omitempty"`
	LateMark    bool     `json:"late_mark"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type MyAttendanceFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateDateFilters(f.Date, f.StartDate, f.EndDate)...)
	errs = append(errs, validateStatusFilter(f.Status)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	ProfileID   *string
	ProfileName *string
	Date        *string
	StartDate   *string
	EndDate     *string
	Status      *string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateDateFilters(f.Date, f.StartDate, f.EndDate)...)
	errs = append(errs, validateStatusFilter(f.Status)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest lets hr/admin correct a record. Clock times are
// "YYYY-MM-DD HH:MM:SS"; total_hours is always recomputed, never accepted
// from the caller.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	errs = append(errs, validateStatusFilter(r.Status)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateDateFilters(date, startDate, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if date != nil && *date != "" {
		if _, ok := validator.IsValidDate(*date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if startDate != nil && *startDate != "" {
		if _, ok := validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if endDate != nil && *endDate != "" {
		if _, ok := validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	return errs
}

func validateStatusFilter(status *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if status != nil && *status != "" {
		valid := []string{string(StatusPresent), string(StatusLate), string(StatusAbsent)}
		if !validator.IsInSlice(*status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, absent",
			})
		}
	}

	return errs
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

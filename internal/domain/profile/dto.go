package profile

import (
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	Department       *string `json:"department,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	HireDate         *string `json:"hire_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type UpdateProfileRequest struct {
	ID               string  `json:"-"`
	FullName         *string `json:"full_name,omitempty"`
	Role             *string `json:"role,omitempty"`
	Department       *string `json:"department,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	HireDate         *string `json:"hire_date,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "profile_id",
			Message: "profile_id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Role != nil {
		if _, ok := user.ParseRole(*r.Role); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role must be one of: employee, hr, admin",
			})
		}
	}

	if r.EmploymentStatus != nil &&
		!validator.IsInSlice(*r.EmploymentStatus, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_status",
			Message: "employment_status must be one of: active, inactive",
		})
	}

	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListProfilesFilter struct {
	Role             *string
	Department       *string
	EmploymentStatus *string
	Search           *string
	Page             int
	Limit            int
}

type ListProfilesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Profiles   []ProfileResponse `json:"profiles"`
}

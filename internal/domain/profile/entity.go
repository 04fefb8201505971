package profile

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/user"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Profile is a user's identity record, distinct from their credentials.
// One profile per user, created automatically on account creation.
type Profile struct {
	ID               string
	UserID           string
	FullName         string
	Email            string
	Role             user.Role
	Department       *string
	EmploymentStatus EmploymentStatus
	HireDate         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

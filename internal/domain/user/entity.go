package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages policy and profiles
	RoleHR       Role = "hr"       // Can approve leave, view all attendance
	RoleEmployee Role = "employee" // Regular employee
)

// ParseRole converts a string to a Role, reporting whether it names a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleHR, RoleEmployee:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	ProfileID *string
	Role      Role
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if the user is hr or admin
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// CanApprove checks if the user can approve leave requests
func (u *User) CanApprove() bool {
	return u.IsHR()
}

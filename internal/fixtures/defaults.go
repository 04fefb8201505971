// Package fixtures holds the default records the seeder installs on a
// fresh database.
package fixtures

import "github.com/attendly/attendly-backend-go/internal/domain/policy"

// DefaultPolicy is the company policy used until an admin changes it.
func DefaultPolicy() policy.Policy {
	return policy.Policy{
		OfficeStartTime:      "09:00",
		OfficeEndTime:        "17:00",
		GraceMinutes:         15,
		LateMarkAfterMinutes: 15,
	}
}

// Default admin account. The password must be rotated after first login.
const (
	AdminEmail    = "admin@attendly.local"
	AdminPassword = "changeme-now"
	AdminFullName = "System Administrator"
)

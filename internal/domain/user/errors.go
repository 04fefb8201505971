package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrHRAccessRequired        = errors.New("hr access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"admin", RoleAdmin, true},
		{"hr", RoleHR, true},
		{"employee", RoleEmployee, true},
		{"manager", "", false},
		{"", "", false},
		{"Admin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{"admin manages policy", RoleAdmin, PermissionPolicyManage, true},
		{"hr cannot manage policy", RoleHR, PermissionPolicyManage, false},
		{"hr approves leave", RoleHR, PermissionLeaveApprove, true},
		{"employee cannot approve leave", RoleEmployee, PermissionLeaveApprove, false},
		{"employee views own attendance", RoleEmployee, PermissionAttendanceViewOwn, true},
		{"employee cannot view all attendance", RoleEmployee, PermissionAttendanceViewAll, false},
		{"hr cannot manage profiles", RoleHR, PermissionProfileManage, false},
		{"unknown role has nothing", Role("manager"), PermissionPolicyView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestEveryRolePermissionIsHeld(t *testing.T) {
	for role, permissions := range RolePermissions {
		for _, permission := range permissions {
			assert.True(t, HasPermission(role, permission), "%s should hold %s", role, permission)
		}
	}
}

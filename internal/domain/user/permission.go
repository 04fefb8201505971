package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Profile Management
	PermissionProfileViewAll Permission = "profile.view_all"
	PermissionProfileManage  Permission = "profile.manage"

	// Policy Management
	PermissionPolicyView   Permission = "policy.view"
	PermissionPolicyManage Permission = "policy.manage"

	// Statistics
	PermissionStatsViewOwn Permission = "stats.view_own"
	PermissionStatsViewAll Permission = "stats.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionProfileViewAll,
		PermissionProfileManage,
		PermissionPolicyView,
		PermissionPolicyManage,
		PermissionStatsViewOwn,
		PermissionStatsViewAll,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionProfileViewAll,
		PermissionPolicyView,
		PermissionStatsViewOwn,
		PermissionStatsViewAll,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionPolicyView,
		PermissionStatsViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

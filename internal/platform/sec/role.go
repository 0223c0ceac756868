// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access. The only role issued today.
	RoleAdmin UserRole = "admin"

	// Read-only access, reserved for a future multi-role extension.
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleViewer:
		return 10
	default:
		return 0
	}
}

// # Principal

// Principal is the normalized identity attached to an authenticated request.
type Principal struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

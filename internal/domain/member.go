package domain

import "time"

// MemberRole enumerates per-business roles.
type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleManager MemberRole = "manager"
	MemberRoleStaff   MemberRole = "staff"
)

// MemberStatus enumerates membership lifecycle states.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member ties a user to exactly one business with a role and, for
// manager/staff, a department.
type Member struct {
	ID         string
	BusinessID string
	UserID     string
	Email      string
	Name       string
	Role       MemberRole
	Department *string
	Status     MemberStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidRole reports whether the role is one of the known member roles.
func ValidRole(role MemberRole) bool {
	switch role {
	case MemberRoleAdmin, MemberRoleManager, MemberRoleStaff:
		return true
	}
	return false
}

// RequiresDepartment reports whether the role must carry a department.
func RequiresDepartment(role MemberRole) bool {
	return role == MemberRoleManager || role == MemberRoleStaff
}

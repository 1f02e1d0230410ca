package auth

import "github.com/talkserve/backend/internal/domain"

// CanListMembers reports whether a member role may read the member roster.
func CanListMembers(role domain.MemberRole) bool {
	return role == domain.MemberRoleAdmin || role == domain.MemberRoleManager
}

// CanManageMembers reports whether a member role may edit or remove members.
func CanManageMembers(role domain.MemberRole) bool {
	return role == domain.MemberRoleAdmin
}

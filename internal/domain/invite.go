package domain

import "time"

// InviteTTL is how long an invite stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

// Invite is a single-use staff invitation for a business.
type Invite struct {
	ID         string
	BusinessID string
	Code       string
	Email      string
	Role       MemberRole
	Department *string
	ExpiresAt  time.Time
	Used       bool
	CreatedAt  time.Time
}

// Expired reports whether the invite is past its expiry at the given time.
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

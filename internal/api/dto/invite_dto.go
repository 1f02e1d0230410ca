package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// CreateInviteRequest payload.
type CreateInviteRequest struct {
	Email      string            `json:"email"`
	Role       domain.MemberRole `json:"role"`
	Department *string           `json:"department"`
}

// AcceptInviteRequest payload for the public accept endpoint.
type AcceptInviteRequest struct {
	BusinessID string `json:"businessId"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// InviteResponse response. The code is only ever exposed to the business
// owner who created it.
type InviteResponse struct {
	ID         string            `json:"id"`
	BusinessID string            `json:"businessId"`
	Code       string            `json:"code"`
	Email      string            `json:"email"`
	Role       domain.MemberRole `json:"role"`
	Department *string           `json:"department"`
	Link       string            `json:"link,omitempty"`
	ExpiresAt  time.Time         `json:"expiresAt"`
	Used       bool              `json:"used"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// InvitePreviewResponse is the public validation view, without the code.
type InvitePreviewResponse struct {
	BusinessID string            `json:"businessId"`
	Email      string            `json:"email"`
	Role       domain.MemberRole `json:"role"`
	Department *string           `json:"department"`
	ExpiresAt  time.Time         `json:"expiresAt"`
}

// NewInviteResponse maps the domain record.
func NewInviteResponse(i *domain.Invite, link string) InviteResponse {
	return InviteResponse{
		ID:         i.ID,
		BusinessID: i.BusinessID,
		Code:       i.Code,
		Email:      i.Email,
		Role:       i.Role,
		Department: i.Department,
		Link:       link,
		ExpiresAt:  i.ExpiresAt,
		Used:       i.Used,
		CreatedAt:  i.CreatedAt,
	}
}

// NewInvitePreview maps the public view.
func NewInvitePreview(i *domain.Invite) InvitePreviewResponse {
	return InvitePreviewResponse{
		BusinessID: i.BusinessID,
		Email:      i.Email,
		Role:       i.Role,
		Department: i.Department,
		ExpiresAt:  i.ExpiresAt,
	}
}

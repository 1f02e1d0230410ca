package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// UpdateMemberRequest carries a partial member update.
type UpdateMemberRequest struct {
	Role       *domain.MemberRole   `json:"role"`
	Department *string              `json:"department"`
	Status     *domain.MemberStatus `json:"status"`
}

// MemberResponse response.
type MemberResponse struct {
	ID         string              `json:"id"`
	BusinessID string              `json:"businessId"`
	UserID     string              `json:"userId"`
	Email      string              `json:"email"`
	Name       string              `json:"name"`
	Role       domain.MemberRole   `json:"role"`
	Department *string             `json:"department"`
	Status     domain.MemberStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// NewMemberResponse maps the domain record.
func NewMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		UserID:     m.UserID,
		Email:      m.Email,
		Name:       m.Name,
		Role:       m.Role,
		Department: m.Department,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

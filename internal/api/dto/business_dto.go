package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
)

// UpdateBusinessRequest payload. Type is immutable and not accepted here.
type UpdateBusinessRequest struct {
	Name string `json:"name"`
}

// BusinessResponse response.
type BusinessResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Type        domain.BusinessType `json:"type"`
	OwnerUserID string              `json:"ownerUserId"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// NewBusinessResponse maps the domain record.
func NewBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		OwnerUserID: b.OwnerUserID,
		CreatedAt:   b.CreatedAt,
	}
}

// SaveContextRequest payload.
type SaveContextRequest struct {
	Context string `json:"context"`
}

// ContextResponse response.
type ContextResponse struct {
	BusinessID string    `json:"businessId"`
	Context    string    `json:"context"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateOwnerRequest payload for the back office.
type UpdateOwnerRequest struct {
	Name string `json:"name"`
}

// OwnerResponse is a back-office row joining a business with its owner.
type OwnerResponse struct {
	Business BusinessResponse `json:"business"`
	Owner    UserResponse     `json:"owner"`
}

// NewOwnerResponse maps the joined record.
func NewOwnerResponse(record repository.OwnerRecord) OwnerResponse {
	return OwnerResponse{
		Business: NewBusinessResponse(&record.Business),
		Owner: UserResponse{
			ID:        record.Owner.ID,
			Email:     record.Owner.Email,
			Name:      record.Owner.Name,
			CreatedAt: record.Owner.CreatedAt,
		},
	}
}

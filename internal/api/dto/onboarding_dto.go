package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// OnboardingResponse response.
type OnboardingResponse struct {
	ID           string                  `json:"id"`
	BusinessName string                  `json:"businessName"`
	BusinessType domain.BusinessType     `json:"businessType"`
	Website      string                  `json:"website"`
	Phone        string                  `json:"phone"`
	LogoPath     *string                 `json:"logoPath"`
	Status       domain.OnboardingStatus `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// NewOnboardingResponse maps the domain record.
func NewOnboardingResponse(o *domain.Onboarding) OnboardingResponse {
	return OnboardingResponse{
		ID:           o.ID,
		BusinessName: o.BusinessName,
		BusinessType: o.BusinessType,
		Website:      o.Website,
		Phone:        o.Phone,
		LogoPath:     o.LogoPath,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

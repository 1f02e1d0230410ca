package domain

import "time"

// OnboardingStatus tracks intake progress.
type OnboardingStatus string

const (
	OnboardingStatusDraft     OnboardingStatus = "draft"
	OnboardingStatusCompleted OnboardingStatus = "completed"
)

// Onboarding captures the signup form for a prospective business owner.
type Onboarding struct {
	ID           string
	UserID       string
	BusinessName string
	BusinessType BusinessType
	Website      string
	Phone        string
	LogoPath     *string
	Status       OnboardingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// BusinessType identifies the vertical a tenant signed up for.
type BusinessType string

const (
	BusinessTypeHotel      BusinessType = "hotel"
	BusinessTypeRestaurant BusinessType = "restaurant"
	BusinessTypeGeneric    BusinessType = "generic"
)

// Business is a tenant. Type is immutable after onboarding.
type Business struct {
	ID          string
	Name        string
	Type        BusinessType
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BusinessContext holds the free-text context the assistant is primed with.
type BusinessContext struct {
	BusinessID string
	Context    string
	UpdatedAt  time.Time
}

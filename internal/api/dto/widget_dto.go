package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// UpdateWidgetSettingsRequest carries a partial settings update.
type UpdateWidgetSettingsRequest struct {
	Enabled  *bool   `json:"enabled"`
	Theme    *string `json:"theme"`
	Position *string `json:"position"`
}

// WidgetSettingsResponse response.
type WidgetSettingsResponse struct {
	BusinessID string    `json:"businessId"`
	Enabled    bool      `json:"enabled"`
	Theme      string    `json:"theme"`
	Position   string    `json:"position"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewWidgetSettingsResponse maps the domain record.
func NewWidgetSettingsResponse(s *domain.WidgetSettings) WidgetSettingsResponse {
	return WidgetSettingsResponse{
		BusinessID: s.BusinessID,
		Enabled:    s.Enabled,
		Theme:      s.Theme,
		Position:   s.Position,
		UpdatedAt:  s.UpdatedAt,
	}
}

// UpdateChatExperienceRequest carries a partial experience update.
type UpdateChatExperienceRequest struct {
	Greeting *string `json:"greeting"`
	Tone     *string `json:"tone"`
	Language *string `json:"language"`
}

// ChatExperienceResponse response.
type ChatExperienceResponse struct {
	BusinessID string `json:"businessId"`
	Greeting   string `json:"greeting"`
	Tone       string `json:"tone"`
	Language   string `json:"language"`
}

// NewChatExperienceResponse maps the domain record.
func NewChatExperienceResponse(e *domain.ChatExperience) ChatExperienceResponse {
	return ChatExperienceResponse{
		BusinessID: e.BusinessID,
		Greeting:   e.Greeting,
		Tone:       e.Tone,
		Language:   e.Language,
	}
}

// EmbedScriptResponse wraps the widget snippet.
type EmbedScriptResponse struct {
	Script string `json:"script"`
}

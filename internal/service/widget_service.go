package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// WidgetService manages the embeddable widget configuration and the chat
// experience settings behind it.
type WidgetService struct {
	widgets   repository.WidgetRepository
	members   repository.MemberRepository
	scriptURL string
}

// NewWidgetService constructs the service.
func NewWidgetService(widgets repository.WidgetRepository, members repository.MemberRepository, scriptURL string) *WidgetService {
	return &WidgetService{widgets: widgets, members: members, scriptURL: scriptURL}
}

// WidgetSettingsInput carries a partial settings update.
type WidgetSettingsInput struct {
	Enabled  *bool
	Theme    *string
	Position *string
}

// ChatExperienceInput carries a partial chat experience update.
type ChatExperienceInput struct {
	Greeting *string
	Tone     *string
	Language *string
}

// GetSettings returns the widget settings for the business.
func (s *WidgetService) GetSettings(ctx context.Context, businessID, callerUserID string) (*domain.WidgetSettings, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	settings, err := s.widgets.GetSettings(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("widget settings", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return settings, nil
}

// UpdateSettings applies a partial update to the widget settings.
func (s *WidgetService) UpdateSettings(ctx context.Context, businessID, callerUserID string, input WidgetSettingsInput) (*domain.WidgetSettings, error) {
	settings, err := s.GetSettings(ctx, businessID, callerUserID)
	if err != nil {
		return nil, err
	}
	if input.Enabled != nil {
		settings.Enabled = *input.Enabled
	}
	if input.Theme != nil {
		settings.Theme = *input.Theme
	}
	if input.Position != nil {
		settings.Position = *input.Position
	}
	if err := s.widgets.UpsertSettings(ctx, settings); err != nil {
		return nil, apperrors.MapError(err)
	}
	return settings, nil
}

// EmbedScript renders the snippet a business pastes into its site. It is
// public and only needs the business id.
func (s *WidgetService) EmbedScript(businessID string) (string, error) {
	if strings.TrimSpace(businessID) == "" {
		return "", apperrors.NewValidationError("businessId required", nil)
	}
	return fmt.Sprintf(
		`<script src=%q data-business-id=%q async></script>`,
		s.scriptURL, businessID,
	), nil
}

// GetChatExperience returns the assistant configuration, falling back to
// defaults when nothing has been saved yet.
func (s *WidgetService) GetChatExperience(ctx context.Context, businessID, callerUserID string) (*domain.ChatExperience, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	exp, err := s.widgets.GetChatExperience(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ChatExperience{
				BusinessID: businessID,
				Greeting:   "Hi! How can we help?",
				Tone:       "friendly",
				Language:   "en",
			}, nil
		}
		return nil, apperrors.MapError(err)
	}
	return exp, nil
}

// UpdateChatExperience applies a partial update to the assistant
// configuration.
func (s *WidgetService) UpdateChatExperience(ctx context.Context, businessID, callerUserID string, input ChatExperienceInput) (*domain.ChatExperience, error) {
	exp, err := s.GetChatExperience(ctx, businessID, callerUserID)
	if err != nil {
		return nil, err
	}
	if input.Greeting != nil {
		exp.Greeting = *input.Greeting
	}
	if input.Tone != nil {
		exp.Tone = *input.Tone
	}
	if input.Language != nil {
		exp.Language = *input.Language
	}
	if err := s.widgets.UpsertChatExperience(ctx, exp); err != nil {
		return nil, apperrors.MapError(err)
	}
	return exp, nil
}

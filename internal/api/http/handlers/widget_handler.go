package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// WidgetHandler covers widget settings, the public embed script and the chat
// experience config.
type WidgetHandler struct {
	service *service.WidgetService
}

// NewWidgetHandler constructs handler.
func NewWidgetHandler(widgetService *service.WidgetService) *WidgetHandler {
	return &WidgetHandler{service: widgetService}
}

// GetSettings GET /businesses/:businessId/widget.
func (h *WidgetHandler) GetSettings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	settings, err := h.service.GetSettings(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWidgetSettingsResponse(settings)})
}

// UpdateSettings PATCH /businesses/:businessId/widget.
func (h *WidgetHandler) UpdateSettings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateWidgetSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.service.UpdateSettings(c.Context(), c.Params("businessId"), principal.User.ID, service.WidgetSettingsInput{
		Enabled:  req.Enabled,
		Theme:    req.Theme,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWidgetSettingsResponse(settings)})
}

// EmbedScript GET /widget/script?businessId=... Public.
func (h *WidgetHandler) EmbedScript(c *fiber.Ctx) error {
	script, err := h.service.EmbedScript(c.Query("businessId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EmbedScriptResponse{Script: script}})
}

// GetChatExperience GET /businesses/:businessId/chat-experience.
func (h *WidgetHandler) GetChatExperience(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	exp, err := h.service.GetChatExperience(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChatExperienceResponse(exp)})
}

// UpdateChatExperience PUT /businesses/:businessId/chat-experience.
func (h *WidgetHandler) UpdateChatExperience(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateChatExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	exp, err := h.service.UpdateChatExperience(c.Context(), c.Params("businessId"), principal.User.ID, service.ChatExperienceInput{
		Greeting: req.Greeting,
		Tone:     req.Tone,
		Language: req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChatExperienceResponse(exp)})
}

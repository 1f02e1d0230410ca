package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// OnboardingHandler drives the multipart signup intake.
type OnboardingHandler struct {
	service   *service.OnboardingService
	uploadDir string
}

// NewOnboardingHandler constructs handler.
func NewOnboardingHandler(onboardingService *service.OnboardingService, uploadDir string) *OnboardingHandler {
	return &OnboardingHandler{service: onboardingService, uploadDir: uploadDir}
}

// GetOnboarding GET /onboarding.
func (h *OnboardingHandler) GetOnboarding(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	record, err := h.service.GetOnboarding(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOnboardingResponse(record)})
}

// CreateOnboarding POST /onboarding. Accepts a multipart form with an
// optional logo file.
func (h *OnboardingHandler) CreateOnboarding(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	input, err := h.parseForm(c)
	if err != nil {
		return err
	}
	record, err := h.service.CreateOnboarding(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewOnboardingResponse(record)})
}

// UpdateOnboarding PATCH /onboarding.
func (h *OnboardingHandler) UpdateOnboarding(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	input, err := h.parseForm(c)
	if err != nil {
		return err
	}
	record, err := h.service.UpdateOnboarding(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOnboardingResponse(record)})
}

// CompleteOnboarding POST /onboarding/complete. Creates the business.
func (h *OnboardingHandler) CompleteOnboarding(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	business, err := h.service.CompleteOnboarding(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewBusinessResponse(business)})
}

func (h *OnboardingHandler) parseForm(c *fiber.Ctx) (service.OnboardingInput, error) {
	input := service.OnboardingInput{
		BusinessName: c.FormValue("businessName"),
		BusinessType: domain.BusinessType(c.FormValue("businessType")),
		Website:      c.FormValue("website"),
		Phone:        c.FormValue("phone"),
	}

	file, err := c.FormFile("logo")
	if err != nil || file == nil {
		return input, nil
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		return input, apperrors.NewValidationError("unsupported logo format", map[string]any{"ext": ext})
	}
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	path := filepath.Join(h.uploadDir, name)
	if err := c.SaveFile(file, path); err != nil {
		return input, apperrors.NewInternalError(err)
	}
	input.LogoPath = &path
	return input, nil
}

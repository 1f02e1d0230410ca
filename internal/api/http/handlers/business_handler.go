package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// BusinessHandler covers tenant reads and the assistant context.
type BusinessHandler struct {
	service *service.BusinessService
}

// NewBusinessHandler constructs handler.
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: businessService}
}

// GetBusiness GET /businesses/:businessId.
func (h *BusinessHandler) GetBusiness(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	business, err := h.service.GetBusiness(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBusinessResponse(business)})
}

// UpdateBusiness PATCH /businesses/:businessId.
func (h *BusinessHandler) UpdateBusiness(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	business, err := h.service.UpdateBusiness(c.Context(), c.Params("businessId"), principal.User.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBusinessResponse(business)})
}

// GetContext GET /businesses/:businessId/context.
func (h *BusinessHandler) GetContext(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	record, err := h.service.GetContext(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ContextResponse{
		BusinessID: record.BusinessID,
		Context:    record.Context,
		UpdatedAt:  record.UpdatedAt,
	}})
}

// SaveContext PUT /businesses/:businessId/context.
func (h *BusinessHandler) SaveContext(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SaveContextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.service.SaveContext(c.Context(), c.Params("businessId"), principal.User.ID, req.Context)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ContextResponse{
		BusinessID: record.BusinessID,
		Context:    record.Context,
		UpdatedAt:  record.UpdatedAt,
	}})
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// AdminHandler is the platform back office. Routes are gated by the platform
// admin middleware.
type AdminHandler struct {
	service *service.BusinessService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(businessService *service.BusinessService) *AdminHandler {
	return &AdminHandler{service: businessService}
}

// ListOwners GET /admin/owners.
func (h *AdminHandler) ListOwners(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	records, err := h.service.ListOwners(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.OwnerResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewOwnerResponse(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateOwner PATCH /admin/owners/:userId.
func (h *AdminHandler) UpdateOwner(c *fiber.Ctx) error {
	var req dto.UpdateOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.UpdateOwner(c.Context(), c.Params("userId"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}})
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// InvitesHandler covers invite issuance for owners and the public
// validate/accept flow for invitees.
type InvitesHandler struct {
	service *service.InviteService
}

// NewInvitesHandler constructs handler.
func NewInvitesHandler(inviteService *service.InviteService) *InvitesHandler {
	return &InvitesHandler{service: inviteService}
}

// CreateInvite POST /businesses/:businessId/invites.
func (h *InvitesHandler) CreateInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.InviteCreateInput{
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
	}
	invite, link, err := h.service.CreateInvite(c.Context(), c.Params("businessId"), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewInviteResponse(invite, link)})
}

// ListInvites GET /businesses/:businessId/invites.
func (h *InvitesHandler) ListInvites(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	invites, err := h.service.ListInvites(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.InviteResponse, 0, len(invites))
	for i := range invites {
		items = append(items, dto.NewInviteResponse(&invites[i], ""))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ValidateInvite GET /invites/validate?businessId=..&code=..
// Public: invitees check their link before registering.
func (h *InvitesHandler) ValidateInvite(c *fiber.Ctx) error {
	businessID := strings.TrimSpace(c.Query("businessId"))
	code := strings.TrimSpace(c.Query("code"))
	if businessID == "" || code == "" {
		return apperrors.NewValidationError("businessId and code required", nil)
	}
	invite, err := h.service.ValidateInvite(c.Context(), businessID, code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInvitePreview(invite)})
}

// AcceptInvite POST /invites/accept. Public: creates the account and the
// membership in one step.
func (h *InvitesHandler) AcceptInvite(c *fiber.Ctx) error {
	var req dto.AcceptInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.BusinessID) == "" || strings.TrimSpace(req.Code) == "" {
		return apperrors.NewValidationError("businessId and code required", nil)
	}

	member, err := h.service.AcceptInvite(c.Context(), service.InviteAcceptInput{
		Code:       req.Code,
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

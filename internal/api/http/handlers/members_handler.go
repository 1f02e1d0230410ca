package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// MembersHandler manages the team roster endpoints.
type MembersHandler struct {
	service *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(memberService *service.MemberService) *MembersHandler {
	return &MembersHandler{service: memberService}
}

// ListMembers GET /businesses/:businessId/members.
func (h *MembersHandler) ListMembers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	members, err := h.service.ListMembers(c.Context(), c.Params("businessId"), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, dto.NewMemberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateMember PATCH /businesses/:businessId/members/:id.
func (h *MembersHandler) UpdateMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.MemberUpdateInput{
		Role:       req.Role,
		Department: req.Department,
		Status:     req.Status,
	}
	member, err := h.service.UpdateMember(c.Context(), c.Params("businessId"), principal.User.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// RemoveMember DELETE /businesses/:businessId/members/:id.
func (h *MembersHandler) RemoveMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.RemoveMember(c.Context(), c.Params("businessId"), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

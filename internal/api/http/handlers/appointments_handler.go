package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// AppointmentsHandler exposes the intake queue and calendar sync.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// ListAppointments GET /appointments.
func (h *AppointmentsHandler) ListAppointments(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	appointments, err := h.service.ListAppointments(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, dto.NewAppointmentResponse(&appointments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SyncAppointments POST /appointments/sync.
func (h *AppointmentsHandler) SyncAppointments(c *fiber.Ctx) error {
	var req dto.SyncAppointmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.AppointmentIDs) == 0 {
		return apperrors.NewValidationError("appointmentIds required", nil)
	}

	result, err := h.service.SyncToCalendar(c.Context(), req.AppointmentIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

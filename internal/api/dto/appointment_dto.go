package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// SyncAppointmentsRequest payload.
type SyncAppointmentsRequest struct {
	AppointmentIDs []string `json:"appointmentIds"`
}

// AppointmentResponse response.
type AppointmentResponse struct {
	ID                 string    `json:"id"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	ConfirmationMethod string    `json:"confirmationMethod"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      string    `json:"customerEmail"`
	CustomerPhone      string    `json:"customerPhone"`
	CalendarSynced     bool      `json:"calendarSynced"`
	CalendarEventID    *string   `json:"calendarEventId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NewAppointmentResponse maps the domain record.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		Date:               a.Date,
		Time:               a.Time,
		ConfirmationMethod: a.ConfirmationMethod,
		CustomerName:       a.CustomerName,
		CustomerEmail:      a.CustomerEmail,
		CustomerPhone:      a.CustomerPhone,
		CalendarSynced:     a.CalendarSynced,
		CalendarEventID:    a.CalendarEventID,
		CreatedAt:          a.CreatedAt,
	}
}

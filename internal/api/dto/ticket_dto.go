package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	RoomNumber   string                `json:"roomNumber"`
	Request      string                `json:"request"`
	Department   string                `json:"department"`
	Priority     domain.TicketPriority `json:"priority"`
	Translations map[string]string     `json:"translations"`
}

// UpdateTicketRequest carries a partial ticket update. Absent fields are left
// untouched.
type UpdateTicketRequest struct {
	Status       *domain.TicketStatus   `json:"status"`
	Priority     *domain.TicketPriority `json:"priority"`
	AssignedTo   *string                `json:"assignedTo"`
	RoomNumber   *string                `json:"roomNumber"`
	Request      *string                `json:"request"`
	Department   *string                `json:"department"`
	Notes        *[]string              `json:"notes"`
	Translations map[string]string      `json:"translations"`
}

// TicketResponse response.
type TicketResponse struct {
	ID             string                `json:"id"`
	BusinessID     string                `json:"businessId"`
	RoomNumber     string                `json:"roomNumber"`
	Request        string                `json:"request"`
	Department     string                `json:"department"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	AssignedTo     *string               `json:"assignedTo"`
	AssignedBy     *string               `json:"assignedBy"`
	AssignedByName *string               `json:"assignedByName"`
	Notes          []string              `json:"notes"`
	Translations   map[string]string     `json:"translations,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// NewTicketResponse maps the domain record.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	notes := t.Notes
	if notes == nil {
		notes = []string{}
	}
	return TicketResponse{
		ID:             t.ID,
		BusinessID:     t.BusinessID,
		RoomNumber:     t.RoomNumber,
		Request:        t.Request,
		Department:     t.Department,
		Priority:       t.Priority,
		Status:         t.Status,
		AssignedTo:     t.AssignedTo,
		AssignedBy:     t.AssignedBy,
		AssignedByName: t.AssignedByName,
		Notes:          notes,
		Translations:   t.Translations,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

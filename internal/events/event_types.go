package events

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventInviteCreated       EventType = "invite_created"
	EventInviteAccepted      EventType = "invite_accepted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	BusinessID string      `json:"business_id"`
	ActorID    string      `json:"actor_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID   string                `json:"ticket_id"`
	Department string                `json:"department"`
	Priority   domain.TicketPriority `json:"priority"`
	RoomNumber string                `json:"room_number"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID   string  `json:"ticket_id"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// InviteCreatedPayload payload.
type InviteCreatedPayload struct {
	InviteID string            `json:"invite_id"`
	Email    string            `json:"email"`
	Role     domain.MemberRole `json:"role"`
	Link     string            `json:"link"`
}

// InviteAcceptedPayload payload.
type InviteAcceptedPayload struct {
	InviteID string `json:"invite_id"`
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
}

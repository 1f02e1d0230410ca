package domain

import "time"

// TicketStatus enumerates produced ticket lifecycle states.
type TicketStatus string

const (
	TicketStatusCreated    TicketStatus = "created"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusCompleted  TicketStatus = "completed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityUrgent TicketPriority = "urgent"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityLow    TicketPriority = "low"
)

// Known hotel departments. The column stays an open string; these are the
// values the portals produce.
const (
	DepartmentFrontDesk    = "front-desk"
	DepartmentHousekeeping = "housekeeping"
	DepartmentMaintenance  = "maintenance"
	DepartmentRoomService  = "room-service"
	DepartmentITSupport    = "it-support"
)

// Ticket is a guest request routed to a department. Tickets are never
// deleted.
type Ticket struct {
	ID             string
	BusinessID     string
	RoomNumber     string
	Request        string
	Department     string
	Priority       TicketPriority
	Status         TicketStatus
	AssignedTo     *string
	AssignedBy     *string
	AssignedByName *string
	Notes          []string
	Translations   map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidStatus reports whether the status is a produced lifecycle state.
func ValidStatus(status TicketStatus) bool {
	switch status {
	case TicketStatusCreated, TicketStatusInProgress, TicketStatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether the priority is known.
func ValidPriority(priority TicketPriority) bool {
	switch priority {
	case TicketPriorityUrgent, TicketPriorityNormal, TicketPriorityLow:
		return true
	}
	return false
}

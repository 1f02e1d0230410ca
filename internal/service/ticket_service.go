package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// TicketService coordinates guest-request workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	members    repository.MemberRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	MemberRepo repository.MemberRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		members:    deps.MemberRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	RoomNumber   string
	Request      string
	Department   string
	Priority     domain.TicketPriority
	Translations map[string]string
}

// TicketListInput describes listing filters before role scoping.
type TicketListInput struct {
	Department *string
	Statuses   []domain.TicketStatus
	Limit      int
	Offset     int
}

// TicketUpdateInput is a partial update; nil fields are left untouched.
type TicketUpdateInput struct {
	RoomNumber   *string
	Request      *string
	Department   *string
	Priority     *domain.TicketPriority
	Status       *domain.TicketStatus
	AssignedTo   *string
	Notes        []string
	Translations map[string]string
}

// CreateTicket records a guest request for routing.
func (s *TicketService) CreateTicket(ctx context.Context, businessID, callerUserID string, input TicketCreateInput) (*domain.Ticket, error) {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Request) == "" {
		return nil, apperrors.NewValidationError("request required", nil)
	}
	if strings.TrimSpace(input.Department) == "" {
		return nil, apperrors.NewValidationError("department required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityNormal
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	ticket := &domain.Ticket{
		BusinessID:   businessID,
		RoomNumber:   strings.TrimSpace(input.RoomNumber),
		Request:      strings.TrimSpace(input.Request),
		Department:   strings.ToLower(strings.TrimSpace(input.Department)),
		Priority:     input.Priority,
		Status:       domain.TicketStatusCreated,
		Notes:        []string{},
		Translations: input.Translations,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketCreated,
		BusinessID: businessID,
		ActorID:    caller.UserID,
		Payload: events.TicketCreatedPayload{
			TicketID:   ticket.ID,
			Department: ticket.Department,
			Priority:   ticket.Priority,
			RoomNumber: ticket.RoomNumber,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the caller's role:
// staff see only tickets assigned to them, managers see their department
// unless an explicit department filter overrides it, admins see everything.
func (s *TicketService) ListTickets(ctx context.Context, businessID, callerUserID string, input TicketListInput) ([]domain.Ticket, error) {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return nil, err
	}

	filter := repository.TicketFilter{
		BusinessID: businessID,
		Department: input.Department,
		Statuses:   input.Statuses,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	applyRoleScope(&filter, caller)

	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a single ticket for a member of the business.
func (s *TicketService) GetTicket(ctx context.Context, businessID, callerUserID, ticketID string) (*domain.Ticket, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, businessID, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// UpdateTicket applies a partial update. Any member of the business may
// mutate any ticket; the one role rule is that staff may not reset status to
// created. Notes are replaced wholesale, so repeating the same payload is
// idempotent.
func (s *TicketService) UpdateTicket(ctx context.Context, businessID, callerUserID, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, businessID, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	oldAssignee := ticket.AssignedTo

	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		if caller.Role == domain.MemberRoleStaff && *input.Status == domain.TicketStatusCreated {
			return nil, apperrors.NewForbidden("staff cannot reset a ticket to created")
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.RoomNumber != nil {
		ticket.RoomNumber = strings.TrimSpace(*input.RoomNumber)
	}
	if input.Request != nil {
		ticket.Request = strings.TrimSpace(*input.Request)
	}
	if input.Department != nil {
		ticket.Department = strings.ToLower(strings.TrimSpace(*input.Department))
	}
	if input.AssignedTo != nil {
		assignee := strings.TrimSpace(*input.AssignedTo)
		if assignee == "" {
			ticket.AssignedTo = nil
			ticket.AssignedBy = nil
			ticket.AssignedByName = nil
		} else if ticket.AssignedTo == nil || *ticket.AssignedTo != assignee {
			// breadcrumb, not a history log: previous values are overwritten
			ticket.AssignedTo = &assignee
			ticket.AssignedBy = &caller.UserID
			ticket.AssignedByName = &caller.Name
		}
	}
	if input.Notes != nil {
		ticket.Notes = input.Notes
	}
	if input.Translations != nil {
		ticket.Translations = input.Translations
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil && oldStatus != ticket.Status {
		s.publishEvent(ctx, events.Event{
			Type:       events.EventTicketStatusChanged,
			BusinessID: businessID,
			ActorID:    caller.UserID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if input.AssignedTo != nil && !equalPtr(oldAssignee, ticket.AssignedTo) {
		s.publishEvent(ctx, events.Event{
			Type:       events.EventTicketAssigned,
			BusinessID: businessID,
			ActorID:    caller.UserID,
			Payload: events.TicketAssignedPayload{
				TicketID:   ticket.ID,
				AssignedTo: ticket.AssignedTo,
			},
		})
	}
	return ticket, nil
}

// applyRoleScope narrows the repository filter before the query runs, so
// visibility is enforced in SQL rather than by scanning the whole collection.
func applyRoleScope(filter *repository.TicketFilter, caller *domain.Member) {
	switch caller.Role {
	case domain.MemberRoleStaff:
		filter.AssigneeUserID = &caller.UserID
		filter.Department = nil
	case domain.MemberRoleManager:
		if filter.Department == nil {
			filter.Department = caller.Department
		}
	case domain.MemberRoleAdmin:
		// no narrowing
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

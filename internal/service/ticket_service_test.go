package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

const bizID = "biz-1"

func newTicketFixture() (*service.TicketService, *mockTicketRepo, *mockMemberRepo, *recordingDispatcher) {
	tickets := newMockTicketRepo()
	members := newMockMemberRepo()
	dispatcher := &recordingDispatcher{}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo: tickets,
		MemberRepo: members,
		Dispatcher: dispatcher,
	})
	return svc, tickets, members, dispatcher
}

func TestCreateTicketRequiresMembership(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	_, err := svc.CreateTicket(context.Background(), bizID, "stranger", service.TicketCreateInput{
		Request:    "extra towels",
		Department: "housekeeping",
	})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateTicketDefaults(t *testing.T) {
	svc, tickets, members, dispatcher := newTicketFixture()
	members.add(activeMember(bizID, "u1", domain.MemberRoleAdmin, nil))

	ticket, err := svc.CreateTicket(context.Background(), bizID, "u1", service.TicketCreateInput{
		RoomNumber: "204",
		Request:    "extra towels",
		Department: "Housekeeping",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCreated, ticket.Status)
	assert.Equal(t, domain.TicketPriorityNormal, ticket.Priority)
	assert.Equal(t, "housekeeping", ticket.Department)
	assert.NotNil(t, tickets.created)
	require.Len(t, dispatcher.byType(events.EventTicketCreated), 1)
}

func TestCreateTicketValidation(t *testing.T) {
	svc, _, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "u1", domain.MemberRoleAdmin, nil))

	_, err := svc.CreateTicket(context.Background(), bizID, "u1", service.TicketCreateInput{Department: "housekeeping"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateTicket(context.Background(), bizID, "u1", service.TicketCreateInput{Request: "towels"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListTicketsStaffScopedToAssignee(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "staff1", domain.MemberRoleStaff, strptr("maintenance")))

	dept := "front-desk"
	_, err := svc.ListTickets(context.Background(), bizID, "staff1", service.TicketListInput{Department: &dept})
	require.NoError(t, err)

	require.NotNil(t, tickets.lastFilter.AssigneeUserID)
	assert.Equal(t, "staff1", *tickets.lastFilter.AssigneeUserID)
	// staff cannot widen their visibility with a department filter
	assert.Nil(t, tickets.lastFilter.Department)
}

func TestListTicketsManagerDefaultsToOwnDepartment(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "mgr1", domain.MemberRoleManager, strptr("housekeeping")))

	_, err := svc.ListTickets(context.Background(), bizID, "mgr1", service.TicketListInput{})
	require.NoError(t, err)
	require.NotNil(t, tickets.lastFilter.Department)
	assert.Equal(t, "housekeeping", *tickets.lastFilter.Department)
	assert.Nil(t, tickets.lastFilter.AssigneeUserID)
}

func TestListTicketsManagerQueryOverridesDepartment(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "mgr1", domain.MemberRoleManager, strptr("housekeeping")))

	dept := "maintenance"
	_, err := svc.ListTickets(context.Background(), bizID, "mgr1", service.TicketListInput{Department: &dept})
	require.NoError(t, err)
	require.NotNil(t, tickets.lastFilter.Department)
	assert.Equal(t, "maintenance", *tickets.lastFilter.Department)
}

func TestListTicketsAdminUnscoped(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "adm1", domain.MemberRoleAdmin, nil))

	_, err := svc.ListTickets(context.Background(), bizID, "adm1", service.TicketListInput{})
	require.NoError(t, err)
	assert.Nil(t, tickets.lastFilter.Department)
	assert.Nil(t, tickets.lastFilter.AssigneeUserID)
}

func TestUpdateTicketStaffCannotResetToCreated(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "staff1", domain.MemberRoleStaff, strptr("housekeeping")))
	tickets.tickets["t1"] = &domain.Ticket{ID: "t1", BusinessID: bizID, Status: domain.TicketStatusInProgress}

	status := domain.TicketStatusCreated
	_, err := svc.UpdateTicket(context.Background(), bizID, "staff1", "t1", service.TicketUpdateInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestUpdateTicketStaffMayCompleteAnyTicket(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "staff1", domain.MemberRoleStaff, strptr("housekeeping")))
	tickets.tickets["t1"] = &domain.Ticket{ID: "t1", BusinessID: bizID, Status: domain.TicketStatusInProgress}

	status := domain.TicketStatusCompleted
	ticket, err := svc.UpdateTicket(context.Background(), bizID, "staff1", "t1", service.TicketUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCompleted, ticket.Status)
}

func TestUpdateTicketAssignmentBreadcrumb(t *testing.T) {
	svc, tickets, members, dispatcher := newTicketFixture()
	caller := activeMember(bizID, "mgr1", domain.MemberRoleManager, strptr("housekeeping"))
	members.add(caller)
	tickets.tickets["t1"] = &domain.Ticket{ID: "t1", BusinessID: bizID, Status: domain.TicketStatusCreated}

	ticket, err := svc.UpdateTicket(context.Background(), bizID, "mgr1", "t1", service.TicketUpdateInput{
		AssignedTo: strptr("staff9"),
	})
	require.NoError(t, err)
	require.NotNil(t, ticket.AssignedTo)
	assert.Equal(t, "staff9", *ticket.AssignedTo)
	require.NotNil(t, ticket.AssignedBy)
	assert.Equal(t, caller.UserID, *ticket.AssignedBy)
	require.NotNil(t, ticket.AssignedByName)
	assert.Equal(t, caller.Name, *ticket.AssignedByName)
	require.Len(t, dispatcher.byType(events.EventTicketAssigned), 1)

	// clearing the assignee clears the breadcrumb too
	ticket, err = svc.UpdateTicket(context.Background(), bizID, "mgr1", "t1", service.TicketUpdateInput{
		AssignedTo: strptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, ticket.AssignedTo)
	assert.Nil(t, ticket.AssignedBy)
	assert.Nil(t, ticket.AssignedByName)
}

func TestUpdateTicketNotesReplaced(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "adm1", domain.MemberRoleAdmin, nil))
	tickets.tickets["t1"] = &domain.Ticket{
		ID: "t1", BusinessID: bizID, Status: domain.TicketStatusCreated,
		Notes: []string{"old note"},
	}

	ticket, err := svc.UpdateTicket(context.Background(), bizID, "adm1", "t1", service.TicketUpdateInput{
		Notes: []string{"replacement"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"replacement"}, ticket.Notes)

	// repeating the same payload is idempotent
	ticket, err = svc.UpdateTicket(context.Background(), bizID, "adm1", "t1", service.TicketUpdateInput{
		Notes: []string{"replacement"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"replacement"}, ticket.Notes)
}

func TestUpdateTicketRequestFields(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "adm1", domain.MemberRoleAdmin, nil))
	tickets.tickets["t1"] = &domain.Ticket{
		ID: "t1", BusinessID: bizID, Status: domain.TicketStatusCreated,
		RoomNumber: "204", Request: "extra towels", Department: "housekeeping",
	}

	ticket, err := svc.UpdateTicket(context.Background(), bizID, "adm1", "t1", service.TicketUpdateInput{
		RoomNumber:   strptr(" 310 "),
		Request:      strptr("leaking faucet"),
		Department:   strptr("Maintenance"),
		Translations: map[string]string{"es": "grifo con fuga"},
	})
	require.NoError(t, err)
	assert.Equal(t, "310", ticket.RoomNumber)
	assert.Equal(t, "leaking faucet", ticket.Request)
	assert.Equal(t, "maintenance", ticket.Department)
	assert.Equal(t, map[string]string{"es": "grifo con fuga"}, ticket.Translations)

	// untouched fields survive the partial update
	assert.Equal(t, domain.TicketStatusCreated, ticket.Status)
}

func TestCreateTicketCarriesTranslations(t *testing.T) {
	svc, _, members, _ := newTicketFixture()
	members.add(activeMember(bizID, "adm1", domain.MemberRoleAdmin, nil))

	ticket, err := svc.CreateTicket(context.Background(), bizID, "adm1", service.TicketCreateInput{
		Request:      "extra towels",
		Department:   "housekeeping",
		Translations: map[string]string{"fr": "serviettes supplémentaires"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fr": "serviettes supplémentaires"}, ticket.Translations)
}

func TestUpdateTicketStatusChangeEvent(t *testing.T) {
	svc, tickets, members, dispatcher := newTicketFixture()
	members.add(activeMember(bizID, "adm1", domain.MemberRoleAdmin, nil))
	tickets.tickets["t1"] = &domain.Ticket{ID: "t1", BusinessID: bizID, Status: domain.TicketStatusCreated}

	status := domain.TicketStatusInProgress
	_, err := svc.UpdateTicket(context.Background(), bizID, "adm1", "t1", service.TicketUpdateInput{Status: &status})
	require.NoError(t, err)

	changed := dispatcher.byType(events.EventTicketStatusChanged)
	require.Len(t, changed, 1)
	payload, ok := changed[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusCreated, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusInProgress, payload.NewStatus)

	// same status again publishes nothing new
	_, err = svc.UpdateTicket(context.Background(), bizID, "adm1", "t1", service.TicketUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Len(t, dispatcher.byType(events.EventTicketStatusChanged), 1)
}

func TestUpdateTicketInactiveMemberForbidden(t *testing.T) {
	svc, tickets, members, _ := newTicketFixture()
	inactive := activeMember(bizID, "u1", domain.MemberRoleAdmin, nil)
	inactive.Status = domain.MemberStatusInactive
	members.add(inactive)
	tickets.tickets["t1"] = &domain.Ticket{ID: "t1", BusinessID: bizID, Status: domain.TicketStatusCreated}

	_, err := svc.GetTicket(context.Background(), bizID, "u1", "t1")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

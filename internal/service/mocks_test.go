package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/repository"
)

// ---------- Mocks ----------

type mockMemberRepo struct {
	members map[string]*domain.Member // businessID+":"+userID
	byID    map[string]*domain.Member
	updated *domain.Member
	deleted []string
	admins  int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{
		members: make(map[string]*domain.Member),
		byID:    make(map[string]*domain.Member),
		admins:  1,
	}
}

func (m *mockMemberRepo) add(member *domain.Member) {
	m.members[member.BusinessID+":"+member.UserID] = member
	m.byID[member.ID] = member
}

func (m *mockMemberRepo) Create(_ context.Context, member *domain.Member) error {
	member.ID = fmt.Sprintf("member-%d", len(m.byID)+1)
	m.add(member)
	return nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *domain.Member) error {
	m.updated = member
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, businessID, memberID string) error {
	m.deleted = append(m.deleted, memberID)
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, businessID, memberID string) (*domain.Member, error) {
	member, ok := m.byID[memberID]
	if !ok || member.BusinessID != businessID {
		return nil, pgx.ErrNoRows
	}
	return member, nil
}

func (m *mockMemberRepo) GetByBusinessAndUser(_ context.Context, businessID, userID string) (*domain.Member, error) {
	member, ok := m.members[businessID+":"+userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return member, nil
}

func (m *mockMemberRepo) ListByBusiness(_ context.Context, businessID string) ([]domain.Member, error) {
	var out []domain.Member
	for _, member := range m.byID {
		if member.BusinessID == businessID {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) CountAdmins(_ context.Context, _ string) (int, error) {
	return m.admins, nil
}

type mockTicketRepo struct {
	tickets    map[string]*domain.Ticket
	lastFilter repository.TicketFilter
	created    *domain.Ticket
	updated    *domain.Ticket
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (m *mockTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = fmt.Sprintf("ticket-%d", len(m.tickets)+1)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	m.tickets[ticket.ID] = ticket
	m.created = ticket
	return nil
}

func (m *mockTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	m.tickets[ticket.ID] = ticket
	m.updated = ticket
	return nil
}

func (m *mockTicketRepo) GetByID(_ context.Context, businessID, id string) (*domain.Ticket, error) {
	ticket, ok := m.tickets[id]
	if !ok || ticket.BusinessID != businessID {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (m *mockTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	m.lastFilter = filter
	return nil, nil
}

func (m *mockTicketRepo) CountByStatusSince(_ context.Context, _ string, _ time.Time) (map[domain.TicketStatus]int, error) {
	return map[domain.TicketStatus]int{domain.TicketStatusCreated: 2}, nil
}

func (m *mockTicketRepo) CountByDepartmentSince(_ context.Context, _ string, _ time.Time) (map[string]int, error) {
	return map[string]int{"housekeeping": 2}, nil
}

type mockInviteRepo struct {
	invites   map[string]*domain.Invite // businessID+":"+code
	created   *domain.Invite
	redeemErr error
	redeemed  bool
	swept     int64
}

func newMockInviteRepo() *mockInviteRepo {
	return &mockInviteRepo{invites: make(map[string]*domain.Invite)}
}

func (m *mockInviteRepo) add(invite *domain.Invite) {
	m.invites[invite.BusinessID+":"+invite.Code] = invite
}

func (m *mockInviteRepo) Create(_ context.Context, invite *domain.Invite) error {
	invite.ID = fmt.Sprintf("invite-%d", len(m.invites)+1)
	invite.CreatedAt = time.Now()
	m.add(invite)
	m.created = invite
	return nil
}

func (m *mockInviteRepo) GetByCode(_ context.Context, businessID, code string) (*domain.Invite, error) {
	invite, ok := m.invites[businessID+":"+code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return invite, nil
}

func (m *mockInviteRepo) ListByBusiness(_ context.Context, businessID string) ([]domain.Invite, error) {
	var out []domain.Invite
	for _, invite := range m.invites {
		if invite.BusinessID == businessID {
			out = append(out, *invite)
		}
	}
	return out, nil
}

func (m *mockInviteRepo) Redeem(_ context.Context, code string, user *domain.User, member *domain.Member) error {
	if m.redeemErr != nil {
		return m.redeemErr
	}
	user.ID = "user-new"
	member.ID = "member-new"
	member.UserID = user.ID
	for _, invite := range m.invites {
		if invite.Code == code {
			invite.Used = true
		}
	}
	m.redeemed = true
	return nil
}

func (m *mockInviteRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	return m.swept, nil
}

type mockBusinessRepo struct {
	businesses map[string]*domain.Business
}

func newMockBusinessRepo() *mockBusinessRepo {
	return &mockBusinessRepo{businesses: make(map[string]*domain.Business)}
}

func (m *mockBusinessRepo) CreateWithOwner(_ context.Context, business *domain.Business, owner *domain.Member) error {
	business.ID = fmt.Sprintf("biz-%d", len(m.businesses)+1)
	m.businesses[business.ID] = business
	owner.BusinessID = business.ID
	return nil
}

func (m *mockBusinessRepo) GetByID(_ context.Context, id string) (*domain.Business, error) {
	business, ok := m.businesses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return business, nil
}

func (m *mockBusinessRepo) GetByOwner(_ context.Context, ownerUserID string) (*domain.Business, error) {
	for _, business := range m.businesses {
		if business.OwnerUserID == ownerUserID {
			return business, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockBusinessRepo) Update(_ context.Context, business *domain.Business) error {
	m.businesses[business.ID] = business
	return nil
}

func (m *mockBusinessRepo) ListOwners(_ context.Context, limit, offset int) ([]repository.OwnerRecord, error) {
	return nil, nil
}

type mockUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*domain.User), byID: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(m.byID)+1)
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type mockRateLimiter struct {
	allowed bool
	calls   int
}

func (m *mockRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.calls++
	return m.allowed, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	var out []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

// ---------- Fixtures ----------

func strptr(s string) *string { return &s }

func activeMember(businessID, userID string, role domain.MemberRole, department *string) *domain.Member {
	return &domain.Member{
		ID:         "member-" + userID,
		BusinessID: businessID,
		UserID:     userID,
		Email:      userID + "@example.com",
		Name:       "Member " + userID,
		Role:       role,
		Department: department,
		Status:     domain.MemberStatusActive,
	}
}

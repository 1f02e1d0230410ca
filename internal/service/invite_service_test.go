package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/repository"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

var inviteCodePattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

type inviteFixture struct {
	svc        *service.InviteService
	invites    *mockInviteRepo
	businesses *mockBusinessRepo
	users      *mockUserRepo
	limiter    *mockRateLimiter
	dispatcher *recordingDispatcher
}

func newInviteFixture() *inviteFixture {
	f := &inviteFixture{
		invites:    newMockInviteRepo(),
		businesses: newMockBusinessRepo(),
		users:      newMockUserRepo(),
		limiter:    &mockRateLimiter{allowed: true},
		dispatcher: &recordingDispatcher{},
	}
	f.businesses.businesses[bizID] = &domain.Business{ID: bizID, Name: "Grand Hotel", OwnerUserID: "owner1"}
	f.svc = service.NewInviteService(service.InviteDependencies{
		InviteRepo:    f.invites,
		BusinessRepo:  f.businesses,
		UserRepo:      f.users,
		RateLimitRepo: f.limiter,
		Dispatcher:    f.dispatcher,
		BaseURL:       "https://app.example.com",
		BcryptCost:    4,
	})
	return f
}

func TestCreateInviteOwnerOnly(t *testing.T) {
	f := newInviteFixture()

	_, _, err := f.svc.CreateInvite(context.Background(), bizID, "not-owner", service.InviteCreateInput{
		Email: "new@example.com",
		Role:  domain.MemberRoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestCreateInviteCodeAndExpiry(t *testing.T) {
	f := newInviteFixture()

	before := time.Now()
	invite, link, err := f.svc.CreateInvite(context.Background(), bizID, "owner1", service.InviteCreateInput{
		Email:      "New@Example.com",
		Role:       domain.MemberRoleStaff,
		Department: strptr("housekeeping"),
	})
	require.NoError(t, err)

	assert.Regexp(t, inviteCodePattern, invite.Code)
	assert.Equal(t, "new@example.com", invite.Email)
	assert.False(t, invite.Used)

	wantExpiry := before.Add(domain.InviteTTL)
	assert.WithinDuration(t, wantExpiry, invite.ExpiresAt, time.Minute)

	assert.Contains(t, link, "code="+invite.Code)
	assert.Contains(t, link, "businessId="+bizID)

	created := f.dispatcher.byType(events.EventInviteCreated)
	require.Len(t, created, 1)
	payload, ok := created[0].Payload.(events.InviteCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, link, payload.Link)
}

func TestCreateInviteDepartmentRequiredForStaff(t *testing.T) {
	f := newInviteFixture()

	_, _, err := f.svc.CreateInvite(context.Background(), bizID, "owner1", service.InviteCreateInput{
		Email: "new@example.com",
		Role:  domain.MemberRoleStaff,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// admins carry no department
	_, _, err = f.svc.CreateInvite(context.Background(), bizID, "owner1", service.InviteCreateInput{
		Email: "new@example.com",
		Role:  domain.MemberRoleAdmin,
	})
	require.NoError(t, err)
}

func TestCreateInviteRateLimited(t *testing.T) {
	f := newInviteFixture()
	f.limiter.allowed = false

	_, _, err := f.svc.CreateInvite(context.Background(), bizID, "owner1", service.InviteCreateInput{
		Email: "new@example.com",
		Role:  domain.MemberRoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.Equal(t, 1, f.limiter.calls)
}

func TestValidateInvite(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "abc", Email: "new@example.com",
		Role: domain.MemberRoleAdmin, ExpiresAt: time.Now().Add(time.Hour),
	})

	invite, err := f.svc.ValidateInvite(context.Background(), bizID, "abc")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", invite.Email)

	_, err = f.svc.ValidateInvite(context.Background(), bizID, "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestValidateInviteUsedAndExpired(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "used", Used: true,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	f.invites.add(&domain.Invite{
		ID: "inv2", BusinessID: bizID, Code: "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	_, err := f.svc.ValidateInvite(context.Background(), bizID, "used")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, err = f.svc.ValidateInvite(context.Background(), bizID, "stale")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAcceptInvite(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "abc", Email: "new@example.com",
		Role: domain.MemberRoleStaff, Department: strptr("housekeeping"),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	member, err := f.svc.AcceptInvite(context.Background(), service.InviteAcceptInput{
		Code:       "abc",
		BusinessID: bizID,
		Name:       "New Person",
		Password:   "supersecret",
	})
	require.NoError(t, err)
	assert.True(t, f.invites.redeemed)
	assert.Equal(t, domain.MemberRoleStaff, member.Role)
	assert.Equal(t, domain.MemberStatusActive, member.Status)
	require.NotNil(t, member.Department)
	assert.Equal(t, "housekeeping", *member.Department)
	require.Len(t, f.dispatcher.byType(events.EventInviteAccepted), 1)
}

func TestAcceptInviteShortPassword(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "abc", Email: "new@example.com",
		Role: domain.MemberRoleAdmin, ExpiresAt: time.Now().Add(time.Hour),
	})

	_, err := f.svc.AcceptInvite(context.Background(), service.InviteAcceptInput{
		Code:       "abc",
		BusinessID: bizID,
		Password:   "short",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.False(t, f.invites.redeemed)
}

func TestAcceptInviteSingleUse(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "abc", Email: "new@example.com",
		Role: domain.MemberRoleAdmin, ExpiresAt: time.Now().Add(time.Hour),
	})
	// simulate losing the redeem race: the row was already marked used
	f.invites.redeemErr = repository.ErrInviteUsed

	_, err := f.svc.AcceptInvite(context.Background(), service.InviteAcceptInput{
		Code:       "abc",
		BusinessID: bizID,
		Password:   "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.Empty(t, f.dispatcher.byType(events.EventInviteAccepted))
}

func TestAcceptInviteEmailAlreadyRegistered(t *testing.T) {
	f := newInviteFixture()
	f.invites.add(&domain.Invite{
		ID: "inv1", BusinessID: bizID, Code: "abc", Email: "taken@example.com",
		Role: domain.MemberRoleAdmin, ExpiresAt: time.Now().Add(time.Hour),
	})
	f.users.byEmail["taken@example.com"] = &domain.User{ID: "u9", Email: "taken@example.com"}

	_, err := f.svc.AcceptInvite(context.Background(), service.InviteAcceptInput{
		Code:       "abc",
		BusinessID: bizID,
		Password:   "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.False(t, f.invites.redeemed)
}

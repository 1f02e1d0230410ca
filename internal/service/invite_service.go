package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

const (
	inviteRateLimit  = 20
	inviteRateWindow = time.Hour
)

// InviteService issues and redeems staff invitations.
type InviteService struct {
	invites    repository.InviteRepository
	businesses repository.BusinessRepository
	users      repository.UserRepository
	rateLimit  repository.RateLimitRepository
	dispatcher events.Dispatcher
	baseURL    string
	bcryptCost int
}

// InviteDependencies bundles repositories for invite service.
type InviteDependencies struct {
	InviteRepo    repository.InviteRepository
	BusinessRepo  repository.BusinessRepository
	UserRepo      repository.UserRepository
	RateLimitRepo repository.RateLimitRepository
	Dispatcher    events.Dispatcher
	BaseURL       string
	BcryptCost    int
}

// NewInviteService constructs the service.
func NewInviteService(deps InviteDependencies) *InviteService {
	return &InviteService{
		invites:    deps.InviteRepo,
		businesses: deps.BusinessRepo,
		users:      deps.UserRepo,
		rateLimit:  deps.RateLimitRepo,
		dispatcher: deps.Dispatcher,
		baseURL:    deps.BaseURL,
		bcryptCost: deps.BcryptCost,
	}
}

// InviteCreateInput describes invite issuance payload.
type InviteCreateInput struct {
	Email      string
	Role       domain.MemberRole
	Department *string
}

// InviteAcceptInput describes redemption payload.
type InviteAcceptInput struct {
	Code       string
	BusinessID string
	Name       string
	Password   string
}

// CreateInvite issues a single-use invitation. Only the business owner may
// issue; ownership is a strict owner_user_id check, not role based.
func (s *InviteService) CreateInvite(ctx context.Context, businessID, callerUserID string, input InviteCreateInput) (*domain.Invite, string, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewNotFound("business", map[string]any{"business_id": businessID})
		}
		return nil, "", apperrors.MapError(err)
	}
	if business.OwnerUserID != callerUserID {
		return nil, "", apperrors.NewForbidden("only the business owner may invite members")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", apperrors.NewValidationError("email required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, "", apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if domain.RequiresDepartment(input.Role) && (input.Department == nil || strings.TrimSpace(*input.Department) == "") {
		return nil, "", apperrors.NewValidationError("department required for manager and staff roles", nil)
	}

	if s.rateLimit != nil {
		allowed, err := s.rateLimit.Allow(ctx, "invites:"+businessID, inviteRateLimit, inviteRateWindow)
		if err == nil && !allowed {
			return nil, "", apperrors.NewConflict("invite rate limit exceeded", nil)
		}
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	invite := &domain.Invite{
		BusinessID: businessID,
		Code:       code,
		Email:      email,
		Role:       input.Role,
		Department: input.Department,
		ExpiresAt:  time.Now().Add(domain.InviteTTL),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, "", apperrors.MapError(err)
	}

	link := s.inviteLink(invite)
	s.publishEvent(ctx, events.Event{
		Type:       events.EventInviteCreated,
		BusinessID: businessID,
		ActorID:    callerUserID,
		Payload: events.InviteCreatedPayload{
			InviteID: invite.ID,
			Email:    invite.Email,
			Role:     invite.Role,
			Link:     link,
		},
	})
	return invite, link, nil
}

// ListInvites returns all invites for the business; owner only.
func (s *InviteService) ListInvites(ctx context.Context, businessID, callerUserID string) ([]domain.Invite, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("business", map[string]any{"business_id": businessID})
		}
		return nil, apperrors.MapError(err)
	}
	if business.OwnerUserID != callerUserID {
		return nil, apperrors.NewForbidden("only the business owner may list invites")
	}
	invites, err := s.invites.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return invites, nil
}

// ValidateInvite checks a code without consuming it. Public.
func (s *InviteService) ValidateInvite(ctx context.Context, businessID, code string) (*domain.Invite, error) {
	invite, err := s.invites.GetByCode(ctx, businessID, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("invite", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if invite.Used {
		return nil, apperrors.NewConflict("invite already used", nil)
	}
	if invite.Expired(time.Now()) {
		return nil, apperrors.NewConflict("invite expired", nil)
	}
	return invite, nil
}

// AcceptInvite redeems a code: creates the auth account, the membership and
// marks the invite used in one transaction, so a failure at any point leaves
// no orphaned account behind.
func (s *InviteService) AcceptInvite(ctx context.Context, input InviteAcceptInput) (*domain.Member, error) {
	invite, err := s.ValidateInvite(ctx, input.BusinessID, input.Code)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if _, err := s.users.GetByEmail(ctx, invite.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        invite.Email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
	}
	member := &domain.Member{
		BusinessID: invite.BusinessID,
		Email:      invite.Email,
		Name:       user.Name,
		Role:       invite.Role,
		Department: invite.Department,
		Status:     domain.MemberStatusActive,
	}

	if err := s.invites.Redeem(ctx, invite.Code, user, member); err != nil {
		if errors.Is(err, repository.ErrInviteUsed) {
			return nil, apperrors.NewConflict("invite already used", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventInviteAccepted,
		BusinessID: invite.BusinessID,
		ActorID:    user.ID,
		Payload: events.InviteAcceptedPayload{
			InviteID: invite.ID,
			MemberID: member.ID,
			Email:    member.Email,
		},
	})
	return member, nil
}

func (s *InviteService) inviteLink(invite *domain.Invite) string {
	return fmt.Sprintf("%s/join?code=%s&businessId=%s", strings.TrimRight(s.baseURL, "/"), invite.Code, invite.BusinessID)
}

// generateInviteCode returns 32 hex characters from crypto/rand.
func generateInviteCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *InviteService) publishEvent(ctx context.Context, event events.Event) {
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

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// BusinessService covers tenant reads, the assistant context, and the
// back-office owner listing.
type BusinessService struct {
	businesses repository.BusinessRepository
	contexts   repository.BusinessContextRepository
	members    repository.MemberRepository
	users      repository.UserRepository
}

// NewBusinessService constructs the service.
func NewBusinessService(businesses repository.BusinessRepository, contexts repository.BusinessContextRepository, members repository.MemberRepository, users repository.UserRepository) *BusinessService {
	return &BusinessService{businesses: businesses, contexts: contexts, members: members, users: users}
}

// GetBusiness returns the tenant record. Any active member may read it.
func (s *BusinessService) GetBusiness(ctx context.Context, businessID, callerUserID string) (*domain.Business, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("business", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return business, nil
}

// UpdateBusiness renames the tenant. Only the owner may change it, and the
// type is never touched after onboarding.
func (s *BusinessService) UpdateBusiness(ctx context.Context, businessID, callerUserID, name string) (*domain.Business, error) {
	business, err := s.GetBusiness(ctx, businessID, callerUserID)
	if err != nil {
		return nil, err
	}
	if business.OwnerUserID != callerUserID {
		return nil, apperrors.NewForbidden("only the owner can update the business")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	business.Name = name
	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, apperrors.MapError(err)
	}
	return business, nil
}

// GetContext returns the assistant priming text, empty when never saved.
func (s *BusinessService) GetContext(ctx context.Context, businessID, callerUserID string) (*domain.BusinessContext, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	record, err := s.contexts.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.BusinessContext{BusinessID: businessID}, nil
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// SaveContext replaces the assistant priming text.
func (s *BusinessService) SaveContext(ctx context.Context, businessID, callerUserID, text string) (*domain.BusinessContext, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	record := &domain.BusinessContext{BusinessID: businessID, Context: text}
	if err := s.contexts.Upsert(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// ListOwners is the platform back-office listing of every business and its
// owner account. The handler gates it behind the platform admin check.
func (s *BusinessService) ListOwners(ctx context.Context, limit, offset int) ([]repository.OwnerRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	records, err := s.businesses.ListOwners(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// UpdateOwner edits an owner account's display name from the back office.
func (s *BusinessService) UpdateOwner(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	user.Name = name
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

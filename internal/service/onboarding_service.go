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

// OnboardingService drives the signup intake and the transactional business
// creation at the end of it.
type OnboardingService struct {
	onboarding repository.OnboardingRepository
	businesses repository.BusinessRepository
	users      repository.UserRepository
}

// NewOnboardingService constructs the service.
func NewOnboardingService(onboarding repository.OnboardingRepository, businesses repository.BusinessRepository, users repository.UserRepository) *OnboardingService {
	return &OnboardingService{onboarding: onboarding, businesses: businesses, users: users}
}

// OnboardingInput carries the multipart form fields.
type OnboardingInput struct {
	BusinessName string
	BusinessType domain.BusinessType
	Website      string
	Phone        string
	LogoPath     *string
}

// GetOnboarding returns the caller's intake record.
func (s *OnboardingService) GetOnboarding(ctx context.Context, userID string) (*domain.Onboarding, error) {
	record, err := s.onboarding.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("onboarding", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// CreateOnboarding starts the intake for the caller.
func (s *OnboardingService) CreateOnboarding(ctx context.Context, userID string, input OnboardingInput) (*domain.Onboarding, error) {
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, apperrors.NewValidationError("business_name required", nil)
	}
	if input.BusinessType == "" {
		input.BusinessType = domain.BusinessTypeGeneric
	}
	if _, err := s.onboarding.GetByUser(ctx, userID); err == nil {
		return nil, apperrors.NewConflict("onboarding already started", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	record := &domain.Onboarding{
		UserID:       userID,
		BusinessName: strings.TrimSpace(input.BusinessName),
		BusinessType: input.BusinessType,
		Website:      strings.TrimSpace(input.Website),
		Phone:        strings.TrimSpace(input.Phone),
		LogoPath:     input.LogoPath,
		Status:       domain.OnboardingStatusDraft,
	}
	if err := s.onboarding.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// UpdateOnboarding edits the draft intake.
func (s *OnboardingService) UpdateOnboarding(ctx context.Context, userID string, input OnboardingInput) (*domain.Onboarding, error) {
	record, err := s.GetOnboarding(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.OnboardingStatusCompleted {
		return nil, apperrors.NewConflict("onboarding already completed", nil)
	}

	if strings.TrimSpace(input.BusinessName) != "" {
		record.BusinessName = strings.TrimSpace(input.BusinessName)
	}
	if input.BusinessType != "" {
		record.BusinessType = input.BusinessType
	}
	if strings.TrimSpace(input.Website) != "" {
		record.Website = strings.TrimSpace(input.Website)
	}
	if strings.TrimSpace(input.Phone) != "" {
		record.Phone = strings.TrimSpace(input.Phone)
	}
	if input.LogoPath != nil {
		record.LogoPath = input.LogoPath
	}

	if err := s.onboarding.Update(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// CompleteOnboarding turns the intake into a live tenant: business, admin
// membership and default widget settings are created in one transaction.
func (s *OnboardingService) CompleteOnboarding(ctx context.Context, userID string) (*domain.Business, error) {
	record, err := s.GetOnboarding(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.OnboardingStatusCompleted {
		return nil, apperrors.NewConflict("onboarding already completed", nil)
	}
	if _, err := s.businesses.GetByOwner(ctx, userID); err == nil {
		return nil, apperrors.NewConflict("business already exists for this account", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	business := &domain.Business{
		Name:        record.BusinessName,
		Type:        record.BusinessType,
		OwnerUserID: userID,
	}
	owner := &domain.Member{
		UserID: userID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   domain.MemberRoleAdmin,
		Status: domain.MemberStatusActive,
	}
	if err := s.businesses.CreateWithOwner(ctx, business, owner); err != nil {
		return nil, apperrors.MapError(err)
	}

	record.Status = domain.OnboardingStatusCompleted
	if err := s.onboarding.Update(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return business, nil
}

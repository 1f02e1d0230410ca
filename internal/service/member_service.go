package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// MemberService manages the team roster of a business.
type MemberService struct {
	members repository.MemberRepository
}

// NewMemberService constructs the service.
func NewMemberService(members repository.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

// MemberUpdateInput is a partial member edit.
type MemberUpdateInput struct {
	Name       *string
	Role       *domain.MemberRole
	Department *string
	Status     *domain.MemberStatus
}

// ListMembers returns the roster; admins and managers only.
func (s *MemberService) ListMembers(ctx context.Context, businessID, callerUserID string) ([]domain.Member, error) {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return nil, err
	}
	if !auth.CanListMembers(caller.Role) {
		return nil, apperrors.NewForbidden("insufficient role")
	}
	result, err := s.members.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// UpdateMember edits role/department/status; admins only. Demoting the last
// active admin is refused so a business cannot lock itself out.
func (s *MemberService) UpdateMember(ctx context.Context, businessID, callerUserID, memberID string, input MemberUpdateInput) (*domain.Member, error) {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageMembers(caller.Role) {
		return nil, apperrors.NewForbidden("insufficient role")
	}

	member, err := s.members.GetByID(ctx, businessID, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", map[string]any{"member_id": memberID})
		}
		return nil, apperrors.MapError(err)
	}

	leavingAdmin := member.Role == domain.MemberRoleAdmin &&
		((input.Role != nil && *input.Role != domain.MemberRoleAdmin) ||
			(input.Status != nil && *input.Status != domain.MemberStatusActive))
	if leavingAdmin {
		admins, err := s.members.CountAdmins(ctx, businessID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if admins <= 1 {
			return nil, apperrors.NewConflict("cannot remove the last admin", nil)
		}
	}

	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		member.Role = *input.Role
	}
	if input.Department != nil {
		department := strings.ToLower(strings.TrimSpace(*input.Department))
		if department == "" {
			member.Department = nil
		} else {
			member.Department = &department
		}
	}
	if domain.RequiresDepartment(member.Role) && member.Department == nil {
		return nil, apperrors.NewValidationError("department required for manager and staff roles", nil)
	}
	if input.Status != nil {
		member.Status = *input.Status
	}
	if input.Name != nil {
		member.Name = strings.TrimSpace(*input.Name)
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// RemoveMember hard-deletes a membership; admins only, last admin protected.
func (s *MemberService) RemoveMember(ctx context.Context, businessID, callerUserID, memberID string) error {
	caller, err := resolveMember(ctx, s.members, businessID, callerUserID)
	if err != nil {
		return err
	}
	if !auth.CanManageMembers(caller.Role) {
		return apperrors.NewForbidden("insufficient role")
	}

	member, err := s.members.GetByID(ctx, businessID, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", map[string]any{"member_id": memberID})
		}
		return apperrors.MapError(err)
	}
	if member.Role == domain.MemberRoleAdmin {
		admins, err := s.members.CountAdmins(ctx, businessID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if admins <= 1 {
			return apperrors.NewConflict("cannot remove the last admin", nil)
		}
	}

	if err := s.members.Delete(ctx, businessID, memberID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

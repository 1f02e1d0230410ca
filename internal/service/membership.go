package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// resolveMember is the single authorization gate for business-scoped
// operations. A missing business and a non-member caller are deliberately
// indistinguishable to the client.
func resolveMember(ctx context.Context, members repository.MemberRepository, businessID, userID string) (*domain.Member, error) {
	member, err := members.GetByBusinessAndUser(ctx, businessID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("not a member of this business")
		}
		return nil, apperrors.MapError(err)
	}
	if member.Status != domain.MemberStatusActive {
		return nil, apperrors.NewForbidden("membership inactive")
	}
	return member, nil
}

package service

import (
	"context"
	"time"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// AnalyticsService aggregates ticket and conversation counts for the
// dashboard.
type AnalyticsService struct {
	tickets       repository.TicketRepository
	conversations repository.ConversationRepository
	members       repository.MemberRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets repository.TicketRepository, conversations repository.ConversationRepository, members repository.MemberRepository) *AnalyticsService {
	return &AnalyticsService{tickets: tickets, conversations: conversations, members: members}
}

// AnalyticsReport is the dashboard payload for one period.
type AnalyticsReport struct {
	Period            string                      `json:"period"`
	Since             time.Time                   `json:"since"`
	TicketsByStatus   map[domain.TicketStatus]int `json:"ticketsByStatus"`
	TicketsByDept     map[string]int              `json:"ticketsByDepartment"`
	ConversationCount int                         `json:"conversationCount"`
}

// periodWindow maps the query parameter onto a lookback window. Unknown
// values default to a week.
func periodWindow(period string, now time.Time) (string, time.Time) {
	switch period {
	case "day":
		return "day", now.Add(-24 * time.Hour)
	case "month":
		return "month", now.AddDate(0, 0, -30)
	default:
		return "week", now.AddDate(0, 0, -7)
	}
}

// GetReport returns aggregated counts for the business over the period. Any
// active member may read analytics.
func (s *AnalyticsService) GetReport(ctx context.Context, businessID, callerUserID, period string) (*AnalyticsReport, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}

	label, since := periodWindow(period, time.Now().UTC())

	byStatus, err := s.tickets.CountByStatusSince(ctx, businessID, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byDept, err := s.tickets.CountByDepartmentSince(ctx, businessID, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	conversations, err := s.conversations.CountSince(ctx, businessID, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &AnalyticsReport{
		Period:            label,
		Since:             since,
		TicketsByStatus:   byStatus,
		TicketsByDept:     byDept,
		ConversationCount: conversations,
	}, nil
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

type mockConversationRepo struct {
	summaries []domain.ConversationSummary
	count     int
}

func (m *mockConversationRepo) CreateSummary(_ context.Context, summary *domain.ConversationSummary) error {
	summary.ID = "sum-1"
	summary.CreatedAt = time.Now()
	m.summaries = append(m.summaries, *summary)
	return nil
}

func (m *mockConversationRepo) ListByBusiness(_ context.Context, businessID string, limit, offset int) ([]domain.ConversationSummary, error) {
	return m.summaries, nil
}

func (m *mockConversationRepo) CountSince(_ context.Context, businessID string, since time.Time) (int, error) {
	return m.count, nil
}

type stubCompleter struct {
	configured bool
	response   string
	err        error
}

func (s *stubCompleter) Configured() bool { return s.configured }

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func newInsightFixture(llm *stubCompleter) (*service.InsightService, *mockConversationRepo, *mockMemberRepo) {
	conversations := &mockConversationRepo{}
	members := newMockMemberRepo()
	members.add(activeMember(bizID, "u1", domain.MemberRoleAdmin, nil))
	return service.NewInsightService(llm, conversations, members), conversations, members
}

func TestAnalyzeSentimentUnconfigured(t *testing.T) {
	svc, _, _ := newInsightFixture(&stubCompleter{configured: false})

	_, err := svc.AnalyzeSentiment(context.Background(), bizID, "u1", "the room was great")
	require.Error(t, err)
	assert.Equal(t, 503, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAnalyzeSentimentLabels(t *testing.T) {
	cases := []struct {
		response string
		want     domain.Sentiment
	}{
		{"positive", domain.SentimentPositive},
		{" Positive.\n", domain.SentimentPositive},
		{"NEGATIVE", domain.SentimentNegative},
		{"neutral", domain.SentimentNeutral},
		{"I would say mixed", domain.SentimentNeutral},
	}
	for _, tc := range cases {
		svc, _, _ := newInsightFixture(&stubCompleter{configured: true, response: tc.response})
		result, err := svc.AnalyzeSentiment(context.Background(), bizID, "u1", "transcript")
		require.NoError(t, err)
		assert.Equal(t, tc.want, result.Sentiment, "response %q", tc.response)
	}
}

func TestAnalyzeSentimentUpstreamFailure(t *testing.T) {
	svc, _, _ := newInsightFixture(&stubCompleter{configured: true, err: errors.New("boom")})

	_, err := svc.AnalyzeSentiment(context.Background(), bizID, "u1", "transcript")
	require.Error(t, err)
	assert.Equal(t, 503, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSaveSummaryValidation(t *testing.T) {
	svc, conversations, _ := newInsightFixture(&stubCompleter{})

	_, err := svc.SaveSummary(context.Background(), bizID, "u1", service.SummaryInput{Summary: "no id"})
	require.Error(t, err)

	bad := domain.Sentiment("angry")
	_, err = svc.SaveSummary(context.Background(), bizID, "u1", service.SummaryInput{
		ConversationID: "c1", Summary: "text", Sentiment: &bad,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	positive := domain.SentimentPositive
	saved, err := svc.SaveSummary(context.Background(), bizID, "u1", service.SummaryInput{
		ConversationID: "c1", Summary: "text", Sentiment: &positive,
	})
	require.NoError(t, err)
	assert.Equal(t, "sum-1", saved.ID)
	assert.Len(t, conversations.summaries, 1)
}

func TestAnalyticsReportPeriods(t *testing.T) {
	tickets := newMockTicketRepo()
	conversations := &mockConversationRepo{count: 7}
	members := newMockMemberRepo()
	members.add(activeMember(bizID, "u1", domain.MemberRoleAdmin, nil))
	svc := service.NewAnalyticsService(tickets, conversations, members)

	cases := []struct {
		period    string
		wantLabel string
		wantSpan  time.Duration
	}{
		{"day", "day", 24 * time.Hour},
		{"week", "week", 7 * 24 * time.Hour},
		{"month", "month", 30 * 24 * time.Hour},
		{"", "week", 7 * 24 * time.Hour},
		{"bogus", "week", 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		report, err := svc.GetReport(context.Background(), bizID, "u1", tc.period)
		require.NoError(t, err)
		assert.Equal(t, tc.wantLabel, report.Period)
		assert.WithinDuration(t, time.Now().UTC().Add(-tc.wantSpan), report.Since, time.Minute)
		assert.Equal(t, 7, report.ConversationCount)
		assert.Equal(t, 2, report.TicketsByStatus[domain.TicketStatusCreated])
	}
}

func TestAnalyticsReportRequiresMembership(t *testing.T) {
	svc := service.NewAnalyticsService(newMockTicketRepo(), &mockConversationRepo{}, newMockMemberRepo())

	_, err := svc.GetReport(context.Background(), bizID, "stranger", "week")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

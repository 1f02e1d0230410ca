package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// Completer is the language-model surface the insight service needs.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// InsightService runs sentiment analysis and stores conversation summaries.
type InsightService struct {
	llm           Completer
	conversations repository.ConversationRepository
	members       repository.MemberRepository
}

// NewInsightService constructs the service.
func NewInsightService(llm Completer, conversations repository.ConversationRepository, members repository.MemberRepository) *InsightService {
	return &InsightService{llm: llm, conversations: conversations, members: members}
}

// SentimentResult is the analysis output.
type SentimentResult struct {
	Sentiment domain.Sentiment `json:"sentiment"`
}

const sentimentPrompt = `Classify the overall customer sentiment of the following conversation.
Answer with exactly one word: positive, neutral or negative.

Conversation:
%s`

// AnalyzeSentiment labels a conversation transcript. When no language-model
// key is configured the endpoint reports unavailable rather than guessing.
func (s *InsightService) AnalyzeSentiment(ctx context.Context, businessID, callerUserID, transcript string) (*SentimentResult, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, apperrors.NewValidationError("transcript required", nil)
	}
	if !s.llm.Configured() {
		return nil, apperrors.NewUnavailable("sentiment analysis is not configured")
	}

	raw, err := s.llm.Complete(ctx, fmt.Sprintf(sentimentPrompt, transcript))
	if err != nil {
		return nil, apperrors.NewUnavailable("sentiment analysis failed")
	}
	return &SentimentResult{Sentiment: parseSentiment(raw)}, nil
}

// parseSentiment tolerates punctuation and casing around the label. Anything
// unrecognized is treated as neutral.
func parseSentiment(raw string) domain.Sentiment {
	label := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(label, "positive"):
		return domain.SentimentPositive
	case strings.Contains(label, "negative"):
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// SummaryInput carries a summary to persist.
type SummaryInput struct {
	ConversationID string
	Summary        string
	Sentiment      *domain.Sentiment
}

// SaveSummary stores a conversation summary posted by the widget backend.
func (s *InsightService) SaveSummary(ctx context.Context, businessID, callerUserID string, input SummaryInput) (*domain.ConversationSummary, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ConversationID) == "" {
		return nil, apperrors.NewValidationError("conversationId required", nil)
	}
	if strings.TrimSpace(input.Summary) == "" {
		return nil, apperrors.NewValidationError("summary required", nil)
	}
	if input.Sentiment != nil {
		switch *input.Sentiment {
		case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		default:
			return nil, apperrors.NewValidationError("invalid sentiment", map[string]any{"sentiment": *input.Sentiment})
		}
	}

	summary := &domain.ConversationSummary{
		BusinessID:     businessID,
		ConversationID: input.ConversationID,
		Summary:        input.Summary,
		Sentiment:      input.Sentiment,
	}
	if err := s.conversations.CreateSummary(ctx, summary); err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

// ListSummaries returns stored summaries, newest first.
func (s *InsightService) ListSummaries(ctx context.Context, businessID, callerUserID string, limit, offset int) ([]domain.ConversationSummary, error) {
	if _, err := resolveMember(ctx, s.members, businessID, callerUserID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	summaries, err := s.conversations.ListByBusiness(ctx, businessID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return summaries, nil
}

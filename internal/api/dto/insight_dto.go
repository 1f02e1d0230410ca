package dto

import (
	"time"

	"github.com/talkserve/backend/internal/domain"
)

// AnalyzeSentimentRequest payload.
type AnalyzeSentimentRequest struct {
	Transcript string `json:"transcript"`
}

// SaveSummaryRequest payload.
type SaveSummaryRequest struct {
	ConversationID string            `json:"conversationId"`
	Summary        string            `json:"summary"`
	Sentiment      *domain.Sentiment `json:"sentiment"`
}

// SummaryResponse response.
type SummaryResponse struct {
	ID             string            `json:"id"`
	BusinessID     string            `json:"businessId"`
	ConversationID string            `json:"conversationId"`
	Summary        string            `json:"summary"`
	Sentiment      *domain.Sentiment `json:"sentiment"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// NewSummaryResponse maps the domain record.
func NewSummaryResponse(s *domain.ConversationSummary) SummaryResponse {
	return SummaryResponse{
		ID:             s.ID,
		BusinessID:     s.BusinessID,
		ConversationID: s.ConversationID,
		Summary:        s.Summary,
		Sentiment:      s.Sentiment,
		CreatedAt:      s.CreatedAt,
	}
}

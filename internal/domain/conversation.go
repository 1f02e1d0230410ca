package domain

import "time"

// Sentiment labels produced by the analysis endpoint.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ConversationSummary is a stored summary of a widget conversation, with the
// sentiment attached when analysis ran.
type ConversationSummary struct {
	ID             string
	BusinessID     string
	ConversationID string
	Summary        string
	Sentiment      *Sentiment
	CreatedAt      time.Time
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// ConversationRepository persists conversation summaries and sentiment.
type ConversationRepository interface {
	CreateSummary(ctx context.Context, summary *domain.ConversationSummary) error
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.ConversationSummary, error)
	CountSince(ctx context.Context, businessID string, since time.Time) (int, error)
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates the repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) CreateSummary(ctx context.Context, summary *domain.ConversationSummary) error {
	const query = `
        INSERT INTO conversation_summaries (business_id, conversation_id, summary, sentiment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		summary.BusinessID,
		summary.ConversationID,
		summary.Summary,
		summary.Sentiment,
	).Scan(&summary.ID, &summary.CreatedAt)
}

func (r *conversationRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.ConversationSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, business_id, conversation_id, summary, sentiment, created_at
        FROM conversation_summaries WHERE business_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ConversationSummary
	for rows.Next() {
		var summary domain.ConversationSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.BusinessID,
			&summary.ConversationID,
			&summary.Summary,
			&summary.Sentiment,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}

func (r *conversationRepository) CountSince(ctx context.Context, businessID string, since time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM conversation_summaries
        WHERE business_id=$1 AND created_at >= $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, businessID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

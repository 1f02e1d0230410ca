package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// BusinessContextRepository persists the assistant priming text.
type BusinessContextRepository interface {
	Get(ctx context.Context, businessID string) (*domain.BusinessContext, error)
	Upsert(ctx context.Context, record *domain.BusinessContext) error
}

type businessContextRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessContextRepository instantiates the repository.
func NewBusinessContextRepository(pool *pgxpool.Pool) BusinessContextRepository {
	return &businessContextRepository{pool: pool}
}

func (r *businessContextRepository) Get(ctx context.Context, businessID string) (*domain.BusinessContext, error) {
	const query = `
        SELECT business_id, context, updated_at
        FROM business_context WHERE business_id=$1`
	var record domain.BusinessContext
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(
		&record.BusinessID,
		&record.Context,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *businessContextRepository) Upsert(ctx context.Context, record *domain.BusinessContext) error {
	const query = `
        INSERT INTO business_context (business_id, context)
        VALUES ($1,$2)
        ON CONFLICT (business_id) DO UPDATE SET context=EXCLUDED.context, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, record.BusinessID, record.Context).Scan(&record.UpdatedAt)
}

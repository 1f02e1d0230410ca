package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

const onboardingColumns = `id, user_id, business_name, business_type, website, phone, logo_path, status, created_at, updated_at`

// OnboardingRepository persists signup intake records.
type OnboardingRepository interface {
	Create(ctx context.Context, record *domain.Onboarding) error
	Update(ctx context.Context, record *domain.Onboarding) error
	GetByUser(ctx context.Context, userID string) (*domain.Onboarding, error)
}

type onboardingRepository struct {
	pool *pgxpool.Pool
}

// NewOnboardingRepository instantiates the repository.
func NewOnboardingRepository(pool *pgxpool.Pool) OnboardingRepository {
	return &onboardingRepository{pool: pool}
}

func (r *onboardingRepository) Create(ctx context.Context, record *domain.Onboarding) error {
	const query = `
        INSERT INTO onboarding (user_id, business_name, business_type, website, phone, logo_path, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.UserID,
		record.BusinessName,
		record.BusinessType,
		record.Website,
		record.Phone,
		record.LogoPath,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *onboardingRepository) Update(ctx context.Context, record *domain.Onboarding) error {
	const query = `
        UPDATE onboarding SET business_name=$1, business_type=$2, website=$3, phone=$4,
            logo_path=$5, status=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		record.BusinessName,
		record.BusinessType,
		record.Website,
		record.Phone,
		record.LogoPath,
		record.Status,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *onboardingRepository) GetByUser(ctx context.Context, userID string) (*domain.Onboarding, error) {
	const query = `
        SELECT ` + onboardingColumns + `
        FROM onboarding WHERE user_id=$1`
	var record domain.Onboarding
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.BusinessName,
		&record.BusinessType,
		&record.Website,
		&record.Phone,
		&record.LogoPath,
		&record.Status,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

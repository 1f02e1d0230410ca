package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// WidgetRepository persists widget settings and chat experience config.
type WidgetRepository interface {
	GetSettings(ctx context.Context, businessID string) (*domain.WidgetSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.WidgetSettings) error
	GetChatExperience(ctx context.Context, businessID string) (*domain.ChatExperience, error)
	UpsertChatExperience(ctx context.Context, exp *domain.ChatExperience) error
}

type widgetRepository struct {
	pool *pgxpool.Pool
}

// NewWidgetRepository instantiates the repository.
func NewWidgetRepository(pool *pgxpool.Pool) WidgetRepository {
	return &widgetRepository{pool: pool}
}

func (r *widgetRepository) GetSettings(ctx context.Context, businessID string) (*domain.WidgetSettings, error) {
	const query = `
        SELECT business_id, enabled, theme, position, updated_at
        FROM widget_settings WHERE business_id=$1`
	var settings domain.WidgetSettings
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(
		&settings.BusinessID,
		&settings.Enabled,
		&settings.Theme,
		&settings.Position,
		&settings.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *widgetRepository) UpsertSettings(ctx context.Context, settings *domain.WidgetSettings) error {
	const query = `
        INSERT INTO widget_settings (business_id, enabled, theme, position)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (business_id) DO UPDATE SET
            enabled=EXCLUDED.enabled, theme=EXCLUDED.theme, position=EXCLUDED.position, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		settings.BusinessID,
		settings.Enabled,
		settings.Theme,
		settings.Position,
	).Scan(&settings.UpdatedAt)
}

func (r *widgetRepository) GetChatExperience(ctx context.Context, businessID string) (*domain.ChatExperience, error) {
	const query = `
        SELECT business_id, greeting, tone, language, updated_at
        FROM chat_experience WHERE business_id=$1`
	var exp domain.ChatExperience
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(
		&exp.BusinessID,
		&exp.Greeting,
		&exp.Tone,
		&exp.Language,
		&exp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (r *widgetRepository) UpsertChatExperience(ctx context.Context, exp *domain.ChatExperience) error {
	const query = `
        INSERT INTO chat_experience (business_id, greeting, tone, language)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (business_id) DO UPDATE SET
            greeting=EXCLUDED.greeting, tone=EXCLUDED.tone, language=EXCLUDED.language, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		exp.BusinessID,
		exp.Greeting,
		exp.Tone,
		exp.Language,
	).Scan(&exp.UpdatedAt)
}

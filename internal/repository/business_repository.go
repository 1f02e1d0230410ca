package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// OwnerRecord pairs a business with its owning account for the back-office
// listing.
type OwnerRecord struct {
	Business domain.Business
	Owner    domain.User
}

// BusinessRepository handles tenant persistence.
type BusinessRepository interface {
	// CreateWithOwner inserts the business, its admin membership and the
	// default widget settings in one transaction.
	CreateWithOwner(ctx context.Context, business *domain.Business, owner *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) error
	ListOwners(ctx context.Context, limit, offset int) ([]OwnerRecord, error)
}

type businessRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository instantiates the repository.
func NewBusinessRepository(pool *pgxpool.Pool) BusinessRepository {
	return &businessRepository{pool: pool}
}

func (r *businessRepository) CreateWithOwner(ctx context.Context, business *domain.Business, owner *domain.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertBusiness = `
        INSERT INTO businesses (name, type, owner_user_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertBusiness,
		business.Name,
		business.Type,
		business.OwnerUserID,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt); err != nil {
		return err
	}

	owner.BusinessID = business.ID
	const insertMember = `
        INSERT INTO members (business_id, user_id, email, name, role, department, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertMember,
		owner.BusinessID,
		owner.UserID,
		owner.Email,
		owner.Name,
		owner.Role,
		owner.Department,
		owner.Status,
	).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt); err != nil {
		return err
	}

	const insertWidget = `
        INSERT INTO widget_settings (business_id, enabled, theme, position)
        VALUES ($1, false, 'light', 'bottom-right')`
	if _, err := tx.Exec(ctx, insertWidget, business.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	const query = `
        SELECT id, name, type, owner_user_id, created_at, updated_at
        FROM businesses WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *businessRepository) GetByOwner(ctx context.Context, ownerUserID string) (*domain.Business, error) {
	const query = `
        SELECT id, name, type, owner_user_id, created_at, updated_at
        FROM businesses WHERE owner_user_id=$1`
	return r.fetchSingle(ctx, query, ownerUserID)
}

func (r *businessRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Business, error) {
	var business domain.Business
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&business.ID,
		&business.Name,
		&business.Type,
		&business.OwnerUserID,
		&business.CreatedAt,
		&business.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &business, nil
}

// Update persists name changes. Type is immutable after onboarding so it is
// deliberately absent from the statement.
func (r *businessRepository) Update(ctx context.Context, business *domain.Business) error {
	const query = `
        UPDATE businesses SET name=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, business.Name, business.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) ListOwners(ctx context.Context, limit, offset int) ([]OwnerRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT b.id, b.name, b.type, b.owner_user_id, b.created_at, b.updated_at,
               u.id, u.email, u.name, u.created_at, u.updated_at
        FROM businesses b
        JOIN users u ON u.id = b.owner_user_id
        ORDER BY b.created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OwnerRecord
	for rows.Next() {
		var rec OwnerRecord
		if err := rows.Scan(
			&rec.Business.ID,
			&rec.Business.Name,
			&rec.Business.Type,
			&rec.Business.OwnerUserID,
			&rec.Business.CreatedAt,
			&rec.Business.UpdatedAt,
			&rec.Owner.ID,
			&rec.Owner.Email,
			&rec.Owner.Name,
			&rec.Owner.CreatedAt,
			&rec.Owner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

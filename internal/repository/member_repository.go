package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

const memberColumns = `id, business_id, user_id, email, name, role, department, status, created_at, updated_at`

// MemberRepository handles persistence for business memberships.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, businessID, memberID string) error
	GetByID(ctx context.Context, businessID, memberID string) (*domain.Member, error)
	GetByBusinessAndUser(ctx context.Context, businessID, userID string) (*domain.Member, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Member, error)
	CountAdmins(ctx context.Context, businessID string) (int, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository instantiates the repository.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (business_id, user_id, email, name, role, department, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		member.BusinessID,
		member.UserID,
		member.Email,
		member.Name,
		member.Role,
		member.Department,
		member.Status,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	const query = `
        UPDATE members SET role=$1, department=$2, status=$3, name=$4, updated_at=NOW()
        WHERE id=$5 AND business_id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		member.Role,
		member.Department,
		member.Status,
		member.Name,
		member.ID,
		member.BusinessID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the membership record. Hard delete; no audit trail.
func (r *memberRepository) Delete(ctx context.Context, businessID, memberID string) error {
	const query = `DELETE FROM members WHERE id=$1 AND business_id=$2`
	cmd, err := r.pool.Exec(ctx, query, memberID, businessID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, businessID, memberID string) (*domain.Member, error) {
	const query = `
        SELECT ` + memberColumns + `
        FROM members WHERE id=$1 AND business_id=$2`
	return r.fetchSingle(ctx, query, memberID, businessID)
}

func (r *memberRepository) GetByBusinessAndUser(ctx context.Context, businessID, userID string) (*domain.Member, error) {
	const query = `
        SELECT ` + memberColumns + `
        FROM members WHERE business_id=$1 AND user_id=$2`
	return r.fetchSingle(ctx, query, businessID, userID)
}

func (r *memberRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Member, error) {
	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&member.ID,
		&member.BusinessID,
		&member.UserID,
		&member.Email,
		&member.Name,
		&member.Role,
		&member.Department,
		&member.Status,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Member, error) {
	const query = `
        SELECT ` + memberColumns + `
        FROM members WHERE business_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.BusinessID,
			&member.UserID,
			&member.Email,
			&member.Name,
			&member.Role,
			&member.Department,
			&member.Status,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *memberRepository) CountAdmins(ctx context.Context, businessID string) (int, error) {
	const query = `SELECT COUNT(*) FROM members WHERE business_id=$1 AND role='admin' AND status='active'`
	var count int
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

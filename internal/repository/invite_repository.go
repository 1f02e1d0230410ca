package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talkserve/backend/internal/domain"
)

// ErrInviteUsed signals a lost redemption race or a replayed code.
var ErrInviteUsed = errors.New("invite already used")

const inviteColumns = `id, business_id, code, email, role, department, expires_at, used, created_at`

// InviteRepository handles invite persistence and atomic redemption.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByCode(ctx context.Context, businessID, code string) (*domain.Invite, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Invite, error)
	// Redeem creates the auth account and the membership and marks the
	// invite used, all in one transaction. The mark-used update is guarded
	// on used=false; losing that race rolls everything back and returns
	// ErrInviteUsed.
	Redeem(ctx context.Context, code string, user *domain.User, member *domain.Member) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository instantiates the repository.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (business_id, code, email, role, department, expires_at, used)
        VALUES ($1,$2,$3,$4,$5,$6,false)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		invite.BusinessID,
		invite.Code,
		invite.Email,
		invite.Role,
		invite.Department,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *inviteRepository) GetByCode(ctx context.Context, businessID, code string) (*domain.Invite, error) {
	const query = `
        SELECT ` + inviteColumns + `
        FROM invites WHERE business_id=$1 AND code=$2`
	var invite domain.Invite
	if err := r.pool.QueryRow(ctx, query, businessID, code).Scan(
		&invite.ID,
		&invite.BusinessID,
		&invite.Code,
		&invite.Email,
		&invite.Role,
		&invite.Department,
		&invite.ExpiresAt,
		&invite.Used,
		&invite.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Invite, error) {
	const query = `
        SELECT ` + inviteColumns + `
        FROM invites WHERE business_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invite
	for rows.Next() {
		var invite domain.Invite
		if err := rows.Scan(
			&invite.ID,
			&invite.BusinessID,
			&invite.Code,
			&invite.Email,
			&invite.Role,
			&invite.Department,
			&invite.ExpiresAt,
			&invite.Used,
			&invite.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, invite)
	}
	return result, rows.Err()
}

func (r *inviteRepository) Redeem(ctx context.Context, code string, user *domain.User, member *domain.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertUser = `
        INSERT INTO users (email, name, password_hash)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertUser,
		user.Email,
		user.Name,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	member.UserID = user.ID
	const insertMember = `
        INSERT INTO members (business_id, user_id, email, name, role, department, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertMember,
		member.BusinessID,
		member.UserID,
		member.Email,
		member.Name,
		member.Role,
		member.Department,
		member.Status,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt); err != nil {
		return err
	}

	const markUsed = `
        UPDATE invites SET used=true
        WHERE business_id=$1 AND code=$2 AND used=false`
	cmd, err := tx.Exec(ctx, markUsed, member.BusinessID, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInviteUsed
	}

	return tx.Commit(ctx)
}

func (r *inviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM invites WHERE used=false AND expires_at < $1`
	cmd, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

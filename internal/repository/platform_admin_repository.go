package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PlatformAdminRepository checks emails against the back-office allowlist
// table.
type PlatformAdminRepository interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type platformAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPlatformAdminRepository instantiates the repository.
func NewPlatformAdminRepository(pool *pgxpool.Pool) PlatformAdminRepository {
	return &platformAdminRepository{pool: pool}
}

func (r *platformAdminRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM platform_admins WHERE email=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

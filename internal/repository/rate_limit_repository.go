package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository throttles invite issuance per business.
type RateLimitRepository interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type rateLimitRepository struct {
	client *redis.Client
}

// NewRateLimitRepository instantiates the repository.
func NewRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &rateLimitRepository{client: client}
}

// Allow increments the window counter and reports whether the caller is under
// the limit. Redis being unreachable fails open.
func (r *rateLimitRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return true, nil
	}
	count, err := r.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return true, nil
	}
	if count == 1 {
		_ = r.client.Expire(ctx, "ratelimit:"+key, window).Err()
	}
	return count <= int64(limit), nil
}

package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jperaza/bancodemo/internal/logger"
)

// TokenDenylistRepository stores revoked JWTs in Redis until they expire.
// Logout adds the presented token; the auth middleware rejects any token
// found here even if its signature is still valid.
type TokenDenylistRepository struct {
	client *redis.Client
}

// NewTokenDenylistRepository creates a new repository instance.
func NewTokenDenylistRepository(client *redis.Client) *TokenDenylistRepository {
	return &TokenDenylistRepository{client: client}
}

// Add marks a token as revoked for the remainder of its lifetime.
func (r *TokenDenylistRepository) Add(ctx context.Context, token string, ttl time.Duration) error {
	key := "revoked_token:" + token
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow("token revoked",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Contains reports whether a token has been revoked.
func (r *TokenDenylistRepository) Contains(ctx context.Context, token string) (bool, error) {
	key := "revoked_token:" + token

	_, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to check token denylist", "key", key, "error", err)
		return false, err
	}
	return true, nil
}

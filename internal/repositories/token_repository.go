package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const RevokedTokenPrefix = "revoked-token:"

// TokenRepository is the logout denylist, keyed by token ID until the token expires.
type TokenRepository struct {
	Client *redis.Client
}

func (r TokenRepository) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return redisOr(r.Client).Set(ctx, RevokedTokenPrefix+jti, "1", ttl).Err()
}

func (r TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := redisOr(r.Client).Get(ctx, RevokedTokenPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

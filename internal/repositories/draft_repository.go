package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	intconfig "travelportal/internal/config"
	"travelportal/internal/domain"
	"travelportal/internal/domain/models"

	"github.com/go-redis/redis/v8"
)

const (
	DraftPrefix      = "draft:"
	SubmitLockPrefix = "draft-submit:"
)

func redisOr(c *redis.Client) *redis.Client {
	if c != nil {
		return c
	}
	return intconfig.Redis
}

// DraftRepository keeps wizard drafts in Redis. Every save refreshes the TTL so
// an abandoned draft expires on its own.
type DraftRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func (r DraftRepository) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return 2 * time.Hour
}

func (r DraftRepository) Save(ctx context.Context, rec models.DraftRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := redisOr(r.Client).Set(ctx, DraftPrefix+rec.ID, data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r DraftRepository) Get(ctx context.Context, id string) (models.DraftRecord, error) {
	var rec models.DraftRecord
	data, err := redisOr(r.Client).Get(ctx, DraftPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, domain.NotFoundError{Resource: "draft", Err: err}
	}
	if err != nil {
		return rec, fmt.Errorf("failed to load draft: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return rec, nil
}

func (r DraftRepository) Delete(ctx context.Context, id string) error {
	return redisOr(r.Client).Del(ctx, DraftPrefix+id).Err()
}

// AcquireSubmitLock returns false when another submit of the same draft holds the lock.
func (r DraftRepository) AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := redisOr(r.Client).SetNX(ctx, SubmitLockPrefix+id, time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (r DraftRepository) ReleaseSubmitLock(ctx context.Context, id string) error {
	return redisOr(r.Client).Del(ctx, SubmitLockPrefix+id).Err()
}

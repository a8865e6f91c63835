package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupTTL      = 24 * time.Hour
	pendingMarker = "pending"
)

// SubmissionDedup backs Idempotency-Key handling for show publishing.
// Key format: idem:show:<owner_id>:<key>. The value is "pending" while the
// first request is in flight and the created show ID afterwards.
type SubmissionDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionDedup creates a SubmissionDedup wrapping the given Redis client.
func NewSubmissionDedup(client *redis.Client) *SubmissionDedup {
	return &SubmissionDedup{client: client, ttl: dedupTTL}
}

// Claim reserves key for ownerID with SET NX. When the key is already held it
// returns the stored show ID, or "" while the first request is still running.
func (d *SubmissionDedup) Claim(ctx context.Context, ownerID, key string) (string, bool, error) {
	k := d.key(ownerID, key)
	ok, err := d.client.SetNX(ctx, k, pendingMarker, d.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("dedup claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := d.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired or released between the two calls.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dedup lookup: %w", err)
	}
	if val == pendingMarker {
		return "", false, nil
	}
	return val, false, nil
}

// Complete records the created show ID under key.
func (d *SubmissionDedup) Complete(ctx context.Context, ownerID, key, showID string) error {
	return d.client.Set(ctx, d.key(ownerID, key), showID, d.ttl).Err()
}

// Release drops a claim after a failed create so the client can retry.
func (d *SubmissionDedup) Release(ctx context.Context, ownerID, key string) error {
	return d.client.Del(ctx, d.key(ownerID, key)).Err()
}

func (d *SubmissionDedup) key(ownerID, key string) string {
	return fmt.Sprintf("idem:show:%s:%s", ownerID, key)
}

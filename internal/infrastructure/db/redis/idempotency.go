package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nocturnal/nocturnal-api/internal/core/ports"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	reserveAttempts       = 2
)

// cmdable is the subset of *redis.Client used by IdempotencyStore.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// entry is the JSON value stored per key. An empty ID marks a pending reservation.
type entry struct {
	ID          string `json:"id,omitempty"`
	Fingerprint string `json:"fp"`
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore implements ports.IdempotencyStore on Redis.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client cmdable
	scope  string
	ttl    time.Duration
}

// NewIdempotencyStore returns a store whose keys live under scope and expire
// after ttl (24h when ttl <= 0).
func NewIdempotencyStore(client *redis.Client, scope string, ttl time.Duration) *IdempotencyStore {
	return newIdempotencyStore(client, scope, ttl)
}

func newIdempotencyStore(client cmdable, scope string, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, scope: scope, ttl: ttl}
}

// Reserve claims key with SETNX. A losing caller gets the current record back.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, fingerprint string) (ports.IdempotencyRecord, bool, error) {
	pending, err := json.Marshal(entry{Fingerprint: fingerprint})
	if err != nil {
		return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency reserve: %w", err)
	}
	k := s.key(key)

	// The holder's entry can expire between SETNX and GET; retry once then.
	for range reserveAttempts {
		ok, err := s.client.SetNX(ctx, k, string(pending), s.ttl).Result()
		if err != nil {
			return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return ports.IdempotencyRecord{Fingerprint: fingerprint}, true, nil
		}

		raw, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency reserve: decode %s: %w", k, err)
		}
		return ports.IdempotencyRecord{ID: e.ID, Fingerprint: e.Fingerprint}, false, nil
	}
	return ports.IdempotencyRecord{}, false, fmt.Errorf("idempotency reserve: %s kept expiring", k)
}

// Complete overwrites the pending entry with the created id.
func (s *IdempotencyStore) Complete(ctx context.Context, key, fingerprint, id string) error {
	done, err := json.Marshal(entry{ID: id, Fingerprint: fingerprint})
	if err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), string(done), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the entry for key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return fmt.Sprintf("idem:%s:%s", s.scope, key)
}

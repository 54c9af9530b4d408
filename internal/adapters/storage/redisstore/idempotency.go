// Package redisstore provides a Redis-backed idempotency store.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

const (
	keyPrefix = "crowdfund:idem:"
	pending   = ""
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps reservations and recorded responses as Redis
// strings with a TTL. A reserved key holds the empty string until completed.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore wraps an existing client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Name implements ports.HealthChecker.
func (s *IdempotencyStore) Name() string {
	return "redis"
}

// HealthCheck implements ports.HealthChecker.
func (s *IdempotencyStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *IdempotencyStore) Close() error {
	return s.client.Close()
}

// Reserve claims key with SET NX.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pending, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserving idempotency key: %w", err)
	}
	return ok, nil
}

// Lookup returns the recorded response, or (nil, true, nil) while pending.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (*ports.StoredResponse, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading idempotency key: %w", err)
	}
	if data == pending {
		return nil, true, nil
	}

	var resp ports.StoredResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, false, fmt.Errorf("decoding stored response: %w", err)
	}
	return &resp, true, nil
}

// Complete overwrites the reservation with the encoded response.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp ports.StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding stored response: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("storing idempotent response: %w", err)
	}
	return nil
}

// Release deletes the key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("releasing idempotency key: %w", err)
	}
	return nil
}

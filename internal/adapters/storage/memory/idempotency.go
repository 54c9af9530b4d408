package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type idempotencyEntry struct {
	resp      *ports.StoredResponse
	expiresAt time.Time
}

// IdempotencyStore keeps idempotency records in a map with clock-driven expiry.
// Expired records are dropped lazily on access.
type IdempotencyStore struct {
	clock ports.Clock

	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

// NewIdempotencyStore returns an empty store that reads expiry time from clock.
func NewIdempotencyStore(clock ports.Clock) *IdempotencyStore {
	return &IdempotencyStore{clock: clock, entries: make(map[string]idempotencyEntry)}
}

// Reserve claims key unless a live record exists.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if _, ok := s.live(key, now); ok {
		return false, nil
	}
	s.entries[key] = idempotencyEntry{expiresAt: now.Add(ttl)}
	return true, nil
}

// Lookup returns the stored response, or (nil, true, nil) while reserved.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (*ports.StoredResponse, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key, s.clock.Now())
	if !ok {
		return nil, false, nil
	}
	if e.resp == nil {
		return nil, true, nil
	}
	resp := *e.resp
	return &resp, true, nil
}

// Complete stores resp under key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp ports.StoredResponse, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{resp: &resp, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

// Release removes key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// live must be called with s.mu held.
func (s *IdempotencyStore) live(key string, now time.Time) (idempotencyEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return idempotencyEntry{}, false
	}
	if !now.Before(e.expiresAt) {
		delete(s.entries, key)
		return idempotencyEntry{}, false
	}
	return e, true
}

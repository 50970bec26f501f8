// Package idempotency deduplicates retried create requests keyed by a
// client-supplied Idempotency-Key.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInProgress is returned while another request holds the same key.
var ErrInProgress = errors.New("idempotency key is in progress")

const DefaultTTL = 24 * time.Hour

type Store interface {
	// Reserve claims key. It reports false when the key is already held or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Complete records the resource created under key.
	Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error
	// Lookup returns the resource id for a completed key.
	Lookup(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
	Close() error
}

type Guard struct {
	store Store
	ttl   time.Duration
}

func NewGuard(store Store, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Guard{store: store, ttl: ttl}
}

// Do runs fn at most once per key and returns the id fn produced. A repeated
// key returns the recorded id with replayed set. An empty key always runs fn.
func (g *Guard) Do(ctx context.Context, key string, fn func() (string, error)) (id string, replayed bool, err error) {
	if key == "" {
		id, err := fn()
		return id, false, err
	}

	reserved, err := g.store.Reserve(ctx, key, g.ttl)
	if err != nil {
		return "", false, fmt.Errorf("reserving idempotency key: %w", err)
	}

	if !reserved {
		id, done, err := g.store.Lookup(ctx, key)
		if err != nil {
			return "", false, fmt.Errorf("looking up idempotency key: %w", err)
		}

		if !done {
			return "", false, ErrInProgress
		}

		return id, true, nil
	}

	id, err = fn()
	if err != nil {
		if relErr := g.store.Release(ctx, key); relErr != nil {
			slog.Error("failed to release idempotency key", "key", key, "error", relErr)
		}

		return "", false, err
	}

	// An unrecorded key must not stay pending, or every retry gets ErrInProgress until the TTL lapses.
	if err := g.store.Complete(ctx, key, id, g.ttl); err != nil {
		slog.Error("failed to complete idempotency key", "key", key, "resource", id, "error", err)

		if relErr := g.store.Release(ctx, key); relErr != nil {
			slog.Error("failed to release idempotency key", "key", key, "error", relErr)
		}
	}

	return id, false, nil
}

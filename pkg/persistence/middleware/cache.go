package middleware

import (
	"context"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/ports"
	"github.com/cockroachdb/errors"
)

type cacheMiddleware struct {
	next  ports.SnapshotStore
	cache ports.SnapshotStore
}

// NewCacheMiddleware serves loads from cache and falls back to the wrapped store, filling the
// cache on a miss. Writes go to the wrapped store first, then to the cache. A memory store in
// front of Redis keeps repeated restores local.
func NewCacheMiddleware(cache ports.SnapshotStore) Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &cacheMiddleware{next: next, cache: cache}
	}
}

func (m *cacheMiddleware) Save(ctx context.Context, id string, states []domain.TerminalState) error {
	if err := m.next.Save(ctx, id, states); err != nil {
		return err
	}
	return m.cache.Save(ctx, id, states)
}

func (m *cacheMiddleware) Load(ctx context.Context, id string) ([]domain.TerminalState, error) {
	states, err := m.cache.Load(ctx, id)
	if err == nil {
		return states, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, err
	}

	states, err = m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.cache.Save(ctx, id, states); err != nil {
		return nil, errors.Wrapf(err, "caching snapshot %q", id)
	}
	return states, nil
}

func (m *cacheMiddleware) Delete(ctx context.Context, id string) error {
	if err := m.next.Delete(ctx, id); err != nil {
		return err
	}
	return m.cache.Delete(ctx, id)
}

// List always asks the wrapped store; the cache may hold only some snapshots.
func (m *cacheMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

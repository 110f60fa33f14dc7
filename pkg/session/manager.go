package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/gridwalk/internal/logging"
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/ports"
	"github.com/cockroachdb/errors"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes mutating traces per key and persists their outcomes.
// Locks are reference counted and dropped when unused.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker also takes a distributed lock, for managers running in several processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL bounds how long a distributed lock outlives a crashed holder.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager persisting to store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// WithLock runs fn while holding the lock for key. Two traces that mutate the same scenario
// of the same network must share a key.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return errors.Wrapf(err, "locking %q", key)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock, it will expire",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Save stores the traced state of network under id.
func (m *Manager) Save(ctx context.Context, id string, network *domain.Network) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, network.Snapshot())
	})
}

// Restore applies the snapshot stored under id to network.
func (m *Manager) Restore(ctx context.Context, id string, network *domain.Network) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.restore(ctx, id, network)
	})
}

func (m *Manager) restore(ctx context.Context, id string, network *domain.Network) error {
	states, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	return network.Restore(states)
}

// RestoreOrTrace restores the snapshot stored under id, or runs trace and stores its outcome
// when there is none. It reports whether trace ran.
func (m *Manager) RestoreOrTrace(ctx context.Context, id string, network *domain.Network, trace func(context.Context) error) (bool, error) {
	traced := false
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		err := m.restore(ctx, id, network)
		if err == nil || !errors.Is(err, domain.ErrSnapshotNotFound) {
			return err
		}

		m.logger.Debug("no snapshot, tracing", "id", id)
		if err := trace(ctx); err != nil {
			return err
		}
		traced = true
		return m.store.Save(ctx, id, network.Snapshot())
	})
	return traced, err
}

// Delete removes the snapshot stored under id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

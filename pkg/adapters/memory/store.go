package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/cockroachdb/errors"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]domain.TerminalState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]domain.TerminalState),
	}
}

// Save keeps a copy of the states, so later changes by the caller are not seen.
func (s *Store) Save(ctx context.Context, id string, states []domain.TerminalState) error {
	copied := slices.Clone(states)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy of the stored states.
func (s *Store) Load(ctx context.Context, id string) ([]domain.TerminalState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states, ok := s.data[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrSnapshotNotFound, "snapshot %q", id)
	}
	return slices.Clone(states), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored snapshot ids in order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

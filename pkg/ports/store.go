package ports

import (
	"context"

	"github.com/aretw0/gridwalk/pkg/domain"
)

// SnapshotStore persists traced outcomes, so a network can be restored without tracing it again.
type SnapshotStore interface {
	// Save persists the terminal states under id, replacing any previous snapshot.
	Save(ctx context.Context, id string, states []domain.TerminalState) error

	// Load retrieves the snapshot saved under id.
	// Returns domain.ErrSnapshotNotFound if there is none.
	Load(ctx context.Context, id string) ([]domain.TerminalState, error)

	// Delete removes the snapshot saved under id. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of every stored snapshot.
	List(ctx context.Context) ([]string, error)
}

package ports

import (
	"context"

	"github.com/aretw0/gridwalk/pkg/domain"
)

// NetworkLoader builds a network from an external description.
type NetworkLoader interface {
	// Load returns a fully wired network, or the first error found in the description.
	Load(ctx context.Context) (*domain.Network, error)
}

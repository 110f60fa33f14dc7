package memory

import (
	"context"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
)

// Loader implements ports.NetworkLoader by replaying builder calls, so every Load returns a
// fresh network with no traced state.
type Loader struct {
	describe func(b *dsl.Builder)
}

// NewLoader creates a loader from a function describing the network.
func NewLoader(describe func(b *dsl.Builder)) *Loader {
	return &Loader{describe: describe}
}

// Load builds a new network.
func (l *Loader) Load(ctx context.Context) (*domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := dsl.New()
	l.describe(b)
	return b.Build()
}

package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/gridwalk/pkg/adapters/memory"
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
	"github.com/aretw0/gridwalk/pkg/phases"
	contract "github.com/aretw0/gridwalk/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(b *dsl.Builder) {
	b.Source("src", phases.PhaseCodeABC).
		Then(b.Breaker("cb", phases.PhaseCodeABC)).
		Then(b.Consumer("load", phases.PhaseCodeABC))
}

func TestInMemoryLoader_Contract(t *testing.T) {
	contract.NetworkLoaderContractTest(t, memory.NewLoader(describe), []string{"src", "cb", "load"})
}

func TestInMemoryLoader_FreshNetworks(t *testing.T) {
	loader := memory.NewLoader(describe)
	ctx := context.Background()

	first, err := loader.Load(ctx)
	require.NoError(t, err)
	src, err := first.Terminal("src-t1")
	require.NoError(t, err)
	src.NormalFeederDirection = domain.DirectionDownstream

	second, err := loader.Load(ctx)
	require.NoError(t, err)
	again, err := second.Terminal("src-t1")
	require.NoError(t, err)
	assert.NotSame(t, src, again)
	assert.Equal(t, domain.DirectionNone, again.NormalFeederDirection)
}

func TestInMemoryLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewLoader(describe).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

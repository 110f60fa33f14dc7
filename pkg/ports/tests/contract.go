package tests

import (
	"context"
	"testing"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SnapshotStoreContractTest verifies that an adapter complies with ports.SnapshotStore.
func SnapshotStoreContractTest(t *testing.T, store ports.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	var status phases.PhaseStatus
	status.Set(phases.A, phases.DirBOTH, phases.A)
	states := []domain.TerminalState{
		{TerminalID: "src-t1", NormalPhases: status.Raw(), CurrentPhases: status.Raw(), NormalDirection: domain.DirectionDownstream},
		{TerminalID: "j-t1", CurrentDirection: domain.DirectionBoth},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-a", states))

		loaded, err := store.Load(ctx, "contract-a")
		require.NoError(t, err)
		assert.Equal(t, states, loaded)
	})

	t.Run("Save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-a", states[:1]))

		loaded, err := store.Load(ctx, "contract-a")
		require.NoError(t, err)
		assert.Equal(t, states[:1], loaded)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, "contract-a")
		require.NoError(t, err)
		loaded[0].TerminalID = "mutated"

		again, err := store.Load(ctx, "contract-a")
		require.NoError(t, err)
		assert.Equal(t, "src-t1", again[0].TerminalID)
	})

	t.Run("Load missing", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-b", states))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, "contract-a")
		assert.Contains(t, ids, "contract-b")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "contract-a"))
		require.NoError(t, store.Delete(ctx, "contract-b"))
		require.NoError(t, store.Delete(ctx, "contract-missing"))

		_, err := store.Load(ctx, "contract-a")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, "contract-a")
		assert.NotContains(t, ids, "contract-b")
	})
}

// NetworkLoaderContractTest verifies that an adapter complies with ports.NetworkLoader. The
// loaded network must hold every equipment mRID in want.
func NetworkLoaderContractTest(t *testing.T, loader ports.NetworkLoader, want []string) {
	t.Helper()

	network, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, network)

	assert.Equal(t, len(want), network.Len())
	for _, id := range want {
		_, err := network.Equipment(id)
		assert.NoError(t, err, "equipment %s", id)
	}

	t.Run("Terminals are reachable by mRID", func(t *testing.T) {
		for _, tm := range network.Terminals() {
			got, err := network.Terminal(tm.MRID)
			require.NoError(t, err)
			assert.Same(t, tm, got)
		}
	})
}

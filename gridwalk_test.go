package gridwalk_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/aretw0/gridwalk"
	"github.com/aretw0/gridwalk/pkg/adapters/memory"
	"github.com/aretw0/gridwalk/pkg/adapters/yamlnet"
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/conditions"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/traversal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type empty = struct{}

// src - cb - acls - load, with cb open only in the current scenario.
func describe(b *dsl.Builder) {
	b.Source("src", phases.PhaseCodeABC).
		Then(b.Breaker("cb", phases.PhaseCodeABC).CurrentlyOpen(phases.NONE)).
		Then(b.Line("acls", phases.PhaseCodeABC).Length(50)).
		Then(b.Consumer("load", phases.PhaseCodeABC))
}

func newEngine(t *testing.T, opts ...gridwalk.Option) *gridwalk.Engine {
	t.Helper()
	opts = append([]gridwalk.Option{gridwalk.WithLoader(memory.NewLoader(describe))}, opts...)
	eng, err := gridwalk.New(context.Background(), opts...)
	require.NoError(t, err)
	return eng
}

func terminal(t *testing.T, eng *gridwalk.Engine, mrid string) *domain.Terminal {
	t.Helper()
	term, err := eng.Network().Terminal(mrid)
	require.NoError(t, err)
	return term
}

// markDownstream writes DOWNSTREAM on every terminal reached from the source.
func markDownstream(eng *gridwalk.Engine) gridwalk.ScenarioFunc {
	return func(ctx context.Context, ops operators.NetworkStateOperators) error {
		src, err := eng.Network().Terminal("src-t1")
		if err != nil {
			return err
		}
		trace := gridwalk.NewTrace[empty](eng, ops)
		trace.AddQueueCondition(conditions.StopAtOpen[empty](ops))
		trace.AddStepAction(func(s networktrace.Step[empty], _ *traversal.StepContext) {
			ops.AddDirection(s.Path.ToTerminal, domain.DirectionDownstream)
		})
		trace.AddStartTerminal(src, empty{})
		trace.Run(ctx)
		return nil
	}
}

func TestNew_RequiresNetwork(t *testing.T) {
	_, err := gridwalk.New(context.Background())
	assert.ErrorIs(t, err, gridwalk.ErrNoNetwork)
}

func TestNew_LoaderError(t *testing.T) {
	_, err := gridwalk.New(context.Background(),
		gridwalk.WithLoader(yamlnet.NewLoader([]byte("equipment:\n  - id: x\n    kind: teapot\n"))))
	assert.ErrorIs(t, err, yamlnet.ErrInvalidDescription)
}

func TestNew_WithNetwork(t *testing.T) {
	network, err := memory.NewLoader(describe).Load(context.Background())
	require.NoError(t, err)

	eng, err := gridwalk.New(context.Background(), gridwalk.WithNetwork(network))
	require.NoError(t, err)
	assert.Same(t, network, eng.Network())
}

func TestEngine_RunScenarios(t *testing.T) {
	eng := newEngine(t)
	require.NoError(t, eng.RunScenarios(context.Background(), markDownstream(eng)))

	load := terminal(t, eng, "load-t1")
	assert.Equal(t, domain.DirectionDownstream, load.NormalFeederDirection)
	assert.Equal(t, domain.DirectionNone, load.CurrentFeederDirection, "cb is open in the current scenario")

	cb1, cb2 := terminal(t, eng, "cb-t1"), terminal(t, eng, "cb-t2")
	assert.Equal(t, domain.DirectionDownstream, cb1.CurrentFeederDirection)
	assert.Equal(t, domain.DirectionNone, cb2.CurrentFeederDirection)
	assert.Equal(t, domain.DirectionDownstream, cb2.NormalFeederDirection)
}

func TestEngine_RunScenarios_Selected(t *testing.T) {
	eng := newEngine(t)
	require.NoError(t, eng.RunScenarios(context.Background(), markDownstream(eng), operators.ScenarioCurrent))

	src := terminal(t, eng, "src-t1")
	assert.Equal(t, domain.DirectionNone, src.NormalFeederDirection)
	assert.Equal(t, domain.DirectionDownstream, src.CurrentFeederDirection)
}

func TestEngine_RunScenarios_Error(t *testing.T) {
	eng := newEngine(t)
	boom := errors.New("boom")

	err := eng.RunScenarios(context.Background(), func(ctx context.Context, ops operators.NetworkStateOperators) error {
		if ops.Scenario() == operators.ScenarioCurrent {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "current scenario")
}

func TestEngine_RunScenarios_Cancelled(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := eng.RunScenarios(ctx, func(ctx context.Context, _ operators.NetworkStateOperators) error {
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_HooksAndMetrics(t *testing.T) {
	var completed atomic.Int32
	reg := prometheus.NewRegistry()
	eng := newEngine(t,
		gridwalk.WithName("test"),
		gridwalk.WithMetrics(reg),
		gridwalk.WithHooks(traversal.Hooks{
			OnRunComplete: func(_ context.Context, ev *traversal.RunEvent) {
				completed.Add(1)
			},
		}),
	)
	require.NoError(t, eng.RunScenarios(context.Background(), markDownstream(eng)))
	require.NoError(t, eng.Save(context.Background(), "base"))
	assert.Equal(t, int32(2), completed.Load())

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "gridwalk_traversal_runs_total")
	assert.Contains(t, names, "gridwalk_traversal_steps_total")
	assert.Contains(t, names, "gridwalk_snapshot_store_operations_total")
}

func TestEngine_MetricsRegisteredTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	newEngine(t, gridwalk.WithMetrics(reg))

	_, err := gridwalk.New(context.Background(),
		gridwalk.WithLoader(memory.NewLoader(describe)), gridwalk.WithMetrics(reg))
	assert.Error(t, err)
}

func TestEngine_SaveRestore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	first := newEngine(t, gridwalk.WithSnapshotStore(store))
	require.NoError(t, first.RunScenarios(ctx, markDownstream(first)))
	require.NoError(t, first.Save(ctx, "base"))

	second := newEngine(t, gridwalk.WithSnapshotStore(store))
	assert.Equal(t, domain.DirectionNone, terminal(t, second, "load-t1").NormalFeederDirection)
	require.NoError(t, second.Restore(ctx, "base"))
	assert.Equal(t, domain.DirectionDownstream, terminal(t, second, "load-t1").NormalFeederDirection)

	assert.ErrorIs(t, second.Restore(ctx, "missing"), domain.ErrSnapshotNotFound)
}

func TestEngine_RestoreOrRun(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	first := newEngine(t, gridwalk.WithSnapshotStore(store))
	ran, err := first.RestoreOrRun(ctx, "base", markDownstream(first))
	require.NoError(t, err)
	assert.True(t, ran)

	second := newEngine(t, gridwalk.WithSnapshotStore(store))
	ran, err = second.RestoreOrRun(ctx, "base", func(context.Context, operators.NetworkStateOperators) error {
		t.Fatal("restored snapshot should skip the run")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, domain.DirectionDownstream, terminal(t, second, "cb-t1").CurrentFeederDirection)
	assert.Equal(t, domain.DirectionNone, terminal(t, second, "cb-t2").CurrentFeederDirection)
}

func TestNewTrace_Options(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	trace := gridwalk.NewTrace[int](eng, operators.Normal,
		gridwalk.WithTraceName[int]("distance"),
		gridwalk.WithActionType[int](networktrace.ActionFirstStepOnEquipment),
		gridwalk.WithComputeData[int](func(current networktrace.Step[int], next networktrace.Path) int {
			return current.Data + 1
		}),
	)
	assert.Equal(t, "distance", trace.Name())
	assert.False(t, trace.Branching())

	var visits []string
	hops := map[string]int{}
	trace.AddStepAction(func(s networktrace.Step[int], _ *traversal.StepContext) {
		mrid := s.Path.ToEquipment().MRID()
		visits = append(visits, mrid)
		hops[mrid] = s.Data
	})
	trace.AddStartTerminal(terminal(t, eng, "src-t1"), 0)
	trace.Run(ctx)

	assert.Equal(t, []string{"src", "cb", "acls", "load"}, visits)
	assert.Equal(t, map[string]int{"src": 0, "cb": 1, "acls": 3, "load": 5}, hops)
}

func TestNewBranchingTrace(t *testing.T) {
	eng := newEngine(t)
	trace := gridwalk.NewBranchingTrace[empty](eng, operators.Current)
	assert.True(t, trace.Branching())
	assert.Equal(t, "gridwalk/current", trace.Name())

	trace.AddQueueCondition(conditions.StopAtOpen[empty](operators.Current))
	trace.AddStartTerminal(terminal(t, eng, "src-t1"), empty{})
	var mrids []string
	for _, ce := range trace.Equipment(context.Background()) {
		mrids = append(mrids, ce.MRID())
	}
	assert.Equal(t, []string{"src", "cb"}, mrids)
}

func TestNew_LoggerOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	newEngine(t, gridwalk.WithName("logged"), gridwalk.WithLogger(logger))
	assert.Contains(t, buf.String(), "engine ready")
	assert.Contains(t, buf.String(), "name=logged")

	eng := newEngine(t, gridwalk.WithLogLevel("error"))
	assert.NotNil(t, eng.Network())
}

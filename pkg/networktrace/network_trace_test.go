package networktrace_test

import (
	"context"
	"testing"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainNetwork(t *testing.T) *domain.Network {
	b := dsl.New()
	b.Source("src", phases.PhaseCodeABC).
		Then(b.Breaker("cb", phases.PhaseCodeABC)).
		Then(b.Line("acls", phases.PhaseCodeABC)).
		Then(b.Junction("j", 2, phases.PhaseCodeABC))
	return build(t, b)
}

func TestNetworkTrace_CountersAndOrder(t *testing.T) {
	network := chainNetwork(t)
	trace := networktrace.New[string](operators.Normal)
	trace.AddStartTerminal(term(t, network, "src-t1"), "head")

	steps := trace.Collect(context.Background())

	var got []string
	for _, s := range steps {
		got = append(got, s.ToTerminal.MRID)
		assert.Equal(t, "head", s.Data)
	}
	assert.Equal(t, []string{"src-t1", "cb-t1", "cb-t2", "acls-t1", "acls-t2", "j-t1", "j-t2"}, got)

	equipmentSteps := make([]int, len(steps))
	terminalSteps := make([]int, len(steps))
	for i, s := range steps {
		equipmentSteps[i] = s.NumEquipmentSteps
		terminalSteps[i] = s.NumTerminalSteps
	}
	assert.Equal(t, []int{0, 1, 1, 2, 2, 3, 3}, equipmentSteps)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, terminalSteps)
	assert.Equal(t, networktrace.StepInternal, steps[4].Type())
	assert.True(t, steps[4].DidTraverseAcLineSegment())
}

func TestNetworkTrace_ComputeData(t *testing.T) {
	network := chainNetwork(t)
	trace := networktrace.New[int](operators.Normal).
		WithComputeData(func(current networktrace.Step[int], next networktrace.Path) int {
			if next.Type() == networktrace.StepExternal {
				return current.Data + 10
			}
			return current.Data + 1
		})
	trace.AddStartTerminal(term(t, network, "src-t1"), 0)

	steps := trace.Collect(context.Background())
	require.NotEmpty(t, steps)
	assert.Equal(t, 10+1+10+1+10+1, steps[len(steps)-1].Data)
}

func TestNetworkTrace_ActionTypes(t *testing.T) {
	network := chainNetwork(t)

	tests := []struct {
		name       string
		actionType networktrace.ActionType
		want       []string
	}{
		{"all steps", networktrace.ActionAllSteps, []string{"src", "cb", "cb", "acls", "acls", "j", "j"}},
		{"first step on equipment", networktrace.ActionFirstStepOnEquipment, []string{"src", "cb", "acls", "j"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace := networktrace.New[struct{}](operators.Normal).WithActionType(tt.actionType)
			var visited []string
			trace.AddStepAction(func(s networktrace.Step[struct{}], _ *traversal.StepContext) {
				visited = append(visited, s.ToEquipment().MRID())
			})
			trace.AddStartTerminal(term(t, network, "src-t1"), struct{}{})

			trace.Run(context.Background())
			assert.Equal(t, tt.want, visited)

			visited = nil
			trace.Run(context.Background())
			assert.Equal(t, tt.want, visited, "the first-step filter resets per run")
		})
	}
}

func TestNetworkTrace_FirstStepFilterFeedsEveryAction(t *testing.T) {
	network := chainNetwork(t)
	trace := networktrace.New[struct{}](operators.Normal).WithActionType(networktrace.ActionFirstStepOnEquipment)

	var first, second []string
	trace.AddStepAction(func(s networktrace.Step[struct{}], _ *traversal.StepContext) {
		first = append(first, s.ToEquipment().MRID())
	})
	trace.AddStepAction(func(s networktrace.Step[struct{}], _ *traversal.StepContext) {
		second = append(second, s.ToEquipment().MRID())
	})
	trace.AddStartTerminal(term(t, network, "src-t1"), struct{}{})

	trace.Run(context.Background())

	want := []string{"src", "cb", "acls", "j"}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}

func TestNetworkTrace_StartEquipment(t *testing.T) {
	network := chainNetwork(t)
	cb, _ := network.Equipment("cb")

	trace := networktrace.New[struct{}](operators.Normal)
	trace.AddStartEquipment(cb, struct{}{})

	assert.Equal(t, []string{"cb", "src", "acls", "j"}, mrids(trace.Equipment(context.Background())))
}

func TestNetworkTrace_StartPhasesFollowTerminal(t *testing.T) {
	b := dsl.New()
	b.Source("src", phases.PhaseCodeAB).Then(b.Junction("j", 1, phases.PhaseCodeAB))
	network := build(t, b)

	trace := networktrace.New[struct{}](operators.Normal)
	trace.AddStartTerminalPhases(term(t, network, "src-t1"), phases.PhaseCodeABC, struct{}{})

	steps := trace.Collect(context.Background())
	require.Len(t, steps, 2)
	assert.Equal(t, phases.StraightPaths(phases.A, phases.B), steps[0].NominalPhasePaths)
	assert.Equal(t, []phases.SinglePhaseKind{phases.A, phases.B}, steps[1].ToPhases())
}

func TestNetworkTrace_HopsAreQueuedOnce(t *testing.T) {
	// Two junctions joined at both ends form a ring back to the start terminal.
	b := dsl.New()
	b.Junction("j1", 2, phases.PhaseCodeA)
	b.Junction("j2", 2, phases.PhaseCodeA)
	b.Connect("j1:1", "j2:1")
	b.Connect("j1:2", "j2:2")
	network := build(t, b)

	trace := networktrace.New[struct{}](operators.Normal)
	trace.AddStartTerminal(term(t, network, "j1-t1"), struct{}{})

	seen := map[networktrace.HopKey]int{}
	var arrivals []string
	for step := range trace.All(context.Background()) {
		seen[step.Key()]++
		arrivals = append(arrivals, step.ToTerminal.MRID)
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "%s -> %s", key.From, key.To)
	}
	assert.Equal(t, []string{"j1-t1", "j2-t1", "j2-t2", "j1-t2", "j1-t1"}, arrivals,
		"the start terminal is reached again through another hop, then the ring closes")
}

func mrids(eqs []domain.ConductingEquipment) []string {
	out := make([]string, 0, len(eqs))
	for _, e := range eqs {
		out = append(out, e.MRID())
	}
	return out
}

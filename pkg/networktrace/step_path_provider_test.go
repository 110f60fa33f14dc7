package networktrace_test

import (
	"testing"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, b *dsl.Builder) *domain.Network {
	t.Helper()
	network, err := b.Build()
	require.NoError(t, err)
	return network
}

func term(t *testing.T, network *domain.Network, mrid string) *domain.Terminal {
	t.Helper()
	tm, err := network.Terminal(mrid)
	require.NoError(t, err)
	return tm
}

func hops(paths []networktrace.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.String())
	}
	return out
}

func busbarNetwork(t *testing.T) *domain.Network {
	b := dsl.New()
	b.Source("src", phases.PhaseCodeABC).Then(b.Breaker("b0", phases.PhaseCodeABC))
	b.Busbar("bbs1", phases.PhaseCodeABC)
	b.Busbar("bbs2", phases.PhaseCodeABC)
	b.Breaker("b1", phases.PhaseCodeABC)
	b.Breaker("b2", phases.PhaseCodeABC)
	b.Node("bus", "b0:2", "bbs1", "bbs2", "b1", "b2")
	return build(t, b)
}

func TestStepPathProvider_BusbarFanOut(t *testing.T) {
	network := busbarNetwork(t)
	provider := networktrace.NewStepPathProvider(operators.Normal)

	intoBus := networktrace.Path{FromTerminal: term(t, network, "b0-t1"), ToTerminal: term(t, network, "b0-t2")}
	next := provider.NextPaths(intoBus)
	assert.Equal(t, []string{"b0-t2 -> bbs1-t1", "b0-t2 -> bbs2-t1"}, hops(next))
	for _, p := range next {
		assert.Equal(t, networktrace.StepExternal, p.Type())
	}

	outOfBus := provider.NextPaths(next[0])
	assert.Equal(t, []string{"bbs1-t1 -> b1-t1", "bbs1-t1 -> b2-t1"}, hops(outOfBus))
}

func TestStepPathProvider_StartAtBusbar(t *testing.T) {
	network := busbarNetwork(t)
	provider := networktrace.NewStepPathProvider(operators.Normal)

	bbs := term(t, network, "bbs2-t1")
	next := provider.NextPaths(networktrace.Path{FromTerminal: bbs, ToTerminal: bbs})
	assert.Equal(t, []string{"bbs2-t1 -> b0-t2", "bbs2-t1 -> b1-t1", "bbs2-t1 -> b2-t1"}, hops(next))
}

func segmentNetwork(t *testing.T) *domain.Network {
	b := dsl.New()
	b.Source("src", phases.PhaseCodeABC).
		Then(b.Line("acls", phases.PhaseCodeABC)).
		Then(b.Junction("j", 2, phases.PhaseCodeABC))
	b.Cut("acls", "cut", 5)
	b.Clamp("acls", "clamp", 2)
	b.Consumer("load", phases.PhaseCodeABC)
	b.Connect("clamp", "load")
	return build(t, b)
}

func TestStepPathProvider_SegmentWaypoints(t *testing.T) {
	network := segmentNetwork(t)
	provider := networktrace.NewStepPathProvider(operators.Normal)
	tm := func(id string) *domain.Terminal { return term(t, network, id) }
	acls, _ := network.Equipment("acls")
	line := acls.(*domain.AcLineSegment)

	tests := []struct {
		name string
		path networktrace.Path
		want []string
	}{
		{
			name: "entering the line reaches the first waypoint only",
			path: networktrace.Path{FromTerminal: tm("src-t1"), ToTerminal: tm("acls-t1")},
			want: []string{"acls-t1 -[acls]-> clamp-t1"},
		},
		{
			name: "along the line keeps heading and leaves through the clamp",
			path: networktrace.Path{FromTerminal: tm("acls-t1"), ToTerminal: tm("clamp-t1"), TraversedAcLineSegment: line},
			want: []string{"clamp-t1 -[acls]-> cut-t1", "clamp-t1 -> load-t1"},
		},
		{
			name: "reaching a cut along the line crosses it internally",
			path: networktrace.Path{FromTerminal: tm("clamp-t1"), ToTerminal: tm("cut-t1"), TraversedAcLineSegment: line},
			want: []string{"cut-t1 -> cut-t2"},
		},
		{
			name: "crossing a cut continues along the line",
			path: networktrace.Path{FromTerminal: tm("cut-t1"), ToTerminal: tm("cut-t2")},
			want: []string{"cut-t2 -[acls]-> acls-t2"},
		},
		{
			name: "the far end leaves across its node",
			path: networktrace.Path{FromTerminal: tm("cut-t2"), ToTerminal: tm("acls-t2"), TraversedAcLineSegment: line},
			want: []string{"acls-t2 -> j-t1"},
		},
		{
			name: "entering through a clamp reaches both neighbours",
			path: networktrace.Path{FromTerminal: tm("load-t1"), ToTerminal: tm("clamp-t1")},
			want: []string{"clamp-t1 -[acls]-> acls-t1", "clamp-t1 -[acls]-> cut-t1"},
		},
		{
			name: "heading back towards terminal 1",
			path: networktrace.Path{FromTerminal: tm("acls-t2"), ToTerminal: tm("cut-t2"), TraversedAcLineSegment: line},
			want: []string{"cut-t2 -> cut-t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hops(provider.NextPaths(tt.path)))
		})
	}
}

func TestStepPathProvider_OutOfServiceWaypointsAreSkipped(t *testing.T) {
	network := segmentNetwork(t)
	cut, _ := network.Equipment("cut")
	operators.Current.SetInService(cut, false)
	acls, _ := network.Equipment("acls")
	line := acls.(*domain.AcLineSegment)

	along := networktrace.Path{
		FromTerminal:           term(t, network, "acls-t1"),
		ToTerminal:             term(t, network, "clamp-t1"),
		TraversedAcLineSegment: line,
	}

	current := networktrace.NewStepPathProvider(operators.Current).NextPaths(along)
	assert.Equal(t, []string{"clamp-t1 -[acls]-> acls-t2", "clamp-t1 -> load-t1"}, hops(current))

	normal := networktrace.NewStepPathProvider(operators.Normal).NextPaths(along)
	assert.Equal(t, []string{"clamp-t1 -[acls]-> cut-t1", "clamp-t1 -> load-t1"}, hops(normal))
}

func TestStepPathProvider_OutOfServiceAndDeadEnds(t *testing.T) {
	network := busbarNetwork(t)
	b1, _ := network.Equipment("b1")
	operators.Current.SetInService(b1, false)

	bbs := term(t, network, "bbs1-t1")
	from := term(t, network, "b0-t2")
	path := networktrace.Path{FromTerminal: from, ToTerminal: bbs}

	current := networktrace.NewStepPathProvider(operators.Current).NextPaths(path)
	assert.Equal(t, []string{"bbs1-t1 -> b2-t1"}, hops(current))

	b2 := term(t, network, "b2-t2")
	assert.Empty(t, networktrace.NewStepPathProvider(operators.Normal).NextPaths(
		networktrace.Path{FromTerminal: term(t, network, "b2-t1"), ToTerminal: b2}),
		"no connectivity node is a dead end")
}

func TestStepPathProvider_PhaseCarryThrough(t *testing.T) {
	b := dsl.New()
	b.Source("src", phases.PhaseCodeABC).Then(b.Junction("j", 2, phases.PhaseCodeABC).Phases(1, phases.PhaseCodeBC))
	network := build(t, b)
	provider := networktrace.NewStepPathProvider(operators.Normal)
	src := term(t, network, "src-t1")

	start := networktrace.Path{FromTerminal: src, ToTerminal: src, NominalPhasePaths: phases.StraightPaths(phases.A, phases.B)}
	next := provider.NextPaths(start)
	require.Len(t, next, 1)
	assert.Equal(t, phases.StraightPaths(phases.B), next[0].NominalPhasePaths)

	onlyA := networktrace.Path{FromTerminal: src, ToTerminal: src, NominalPhasePaths: phases.StraightPaths(phases.A)}
	assert.Empty(t, provider.NextPaths(onlyA), "a hop left without phases is dropped")
}

func TestTerminalConnectivity(t *testing.T) {
	newTerm := func(code phases.PhaseCode) *domain.Terminal {
		return domain.NewJunction("j"+code.String(), 1, code).Terminal(1)
	}

	tests := []struct {
		name     string
		from, to phases.PhaseCode
		want     []phases.NominalPhasePath
	}{
		{"exact", phases.PhaseCodeABCN, phases.PhaseCodeABCN, phases.StraightPaths(phases.A, phases.B, phases.C, phases.N)},
		{"subset", phases.PhaseCodeABC, phases.PhaseCodeAC, phases.StraightPaths(phases.A, phases.C)},
		{"xy onto abc", phases.PhaseCodeXYN, phases.PhaseCodeBCN, []phases.NominalPhasePath{
			{From: phases.N, To: phases.N},
			{From: phases.X, To: phases.B},
			{From: phases.Y, To: phases.C},
		}},
		{"abc onto x", phases.PhaseCodeA, phases.PhaseCodeX, []phases.NominalPhasePath{{From: phases.A, To: phases.X}}},
		{"disjoint", phases.PhaseCodeA, phases.PhaseCodeB, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, networktrace.TerminalConnectivity(newTerm(tt.from), newTerm(tt.to)))
		})
	}
}

func TestPath_Classification(t *testing.T) {
	network := segmentNetwork(t)
	acls, _ := network.Equipment("acls")
	line := acls.(*domain.AcLineSegment)

	internal := networktrace.Path{FromTerminal: term(t, network, "acls-t1"), ToTerminal: term(t, network, "acls-t2"), TraversedAcLineSegment: line}
	assert.True(t, internal.TracedInternally())
	assert.Equal(t, networktrace.StepInternal, internal.Type())

	along := networktrace.Path{FromTerminal: term(t, network, "acls-t1"), ToTerminal: term(t, network, "clamp-t1"), TraversedAcLineSegment: line}
	assert.True(t, along.TracedExternally())
	assert.Equal(t, networktrace.StepInternal, along.Type())

	external := networktrace.Path{FromTerminal: term(t, network, "src-t1"), ToTerminal: term(t, network, "acls-t1")}
	assert.Equal(t, networktrace.StepExternal, external.Type())
	assert.Equal(t, "src", external.FromEquipment().MRID())

	assert.True(t, networktrace.StepAll.Matches(networktrace.StepExternal))
	assert.False(t, networktrace.StepInternal.Matches(networktrace.StepExternal))
}

package dsl

import (
	"testing"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFeeder(t *testing.T) {
	b := New()

	b.Source("src", phases.PhaseCodeABC).
		Then(b.Breaker("cb", phases.PhaseCodeABC).Open()).
		Then(b.Line("acls", phases.PhaseCodeABC).Length(120)).
		Then(b.Junction("j", 2, phases.PhaseCodeABC).Named("tee"))
	b.Clamp("acls", "clamp", 40)
	b.Cut("acls", "cut", 80)
	b.Feeder("fdr", "src")

	network, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 6, network.Len())

	cb, err := network.Equipment("cb")
	require.NoError(t, err)
	sw := cb.(domain.Switchable).SwitchState()
	assert.True(t, sw.IsNormallyOpen(phases.A))
	assert.True(t, sw.IsOpen(phases.C))

	src, _ := network.Terminal("src-t1")
	cbT1, _ := network.Terminal("cb-t1")
	assert.Same(t, src.ConnectivityNode, cbT1.ConnectivityNode)

	acls, _ := network.Equipment("acls")
	line := acls.(*domain.AcLineSegment)
	assert.Equal(t, 120.0, line.Length)
	require.Len(t, line.Waypoints(), 2)
	assert.Equal(t, phases.PhaseCodeABC, line.Clamps()[0].Terminal(1).Phases)

	j, _ := network.Equipment("j")
	assert.Equal(t, "tee", j.Core().Name)

	fdr, err := network.Feeder("fdr")
	require.NoError(t, err)
	assert.Same(t, src, fdr.HeadTerminal)
}

func TestBuilder_NodesAndReferences(t *testing.T) {
	b := New()
	b.Breaker("b0", phases.PhaseCodeABC)
	b.Busbar("bbs1", phases.PhaseCodeABC)
	b.Busbar("bbs2", phases.PhaseCodeABC)
	b.Node("bus", "b0:2", "bbs1", "bbs2")

	network, err := b.Build()
	require.NoError(t, err)

	cn, ok := network.Node("bus")
	require.True(t, ok)
	assert.Len(t, cn.Terminals, 3)

	t2, err := b.Terminal("b0:2")
	require.NoError(t, err)
	assert.Equal(t, 2, t2.SequenceNumber)
}

func TestBuilder_ReportsFirstError(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
		is    error
	}{
		{"unknown equipment", func(b *Builder) { b.Connect("nope", "also-nope") }, domain.ErrEquipmentNotFound},
		{"unknown terminal", func(b *Builder) {
			b.Junction("j", 1, phases.PhaseCodeA)
			b.Node("n", "j:3")
		}, domain.ErrTerminalNotFound},
		{"clamp on missing line", func(b *Builder) { b.Clamp("acls", "c", 1) }, domain.ErrEquipmentNotFound},
		{"duplicate", func(b *Builder) {
			b.Junction("j", 1, phases.PhaseCodeA)
			b.Junction("j", 1, phases.PhaseCodeA)
		}, domain.ErrDuplicateMRID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.build(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestBuilder_BadReferenceSyntax(t *testing.T) {
	b := New()
	b.Junction("j", 1, phases.PhaseCodeA)
	_, err := b.Terminal("j:x")
	assert.Error(t, err)
}

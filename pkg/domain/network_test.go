package domain_test

import (
	"testing"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork_AddRejectsDuplicates(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.Add(domain.NewJunction("j1", 2, phases.PhaseCodeABC)))

	err := net.Add(domain.NewJunction("j1", 1, phases.PhaseCodeABC))
	assert.ErrorIs(t, err, domain.ErrDuplicateMRID)

	_, err = net.Equipment("missing")
	assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)

	term, err := net.Terminal("j1-t2")
	require.NoError(t, err)
	assert.Equal(t, 2, term.SequenceNumber)
}

func TestNetwork_ConnectTerminals(t *testing.T) {
	net := domain.NewNetwork()
	a := domain.NewJunction("a", 1, phases.PhaseCodeA)
	b := domain.NewJunction("b", 1, phases.PhaseCodeA)
	c := domain.NewJunction("c", 1, phases.PhaseCodeA)
	d := domain.NewJunction("d", 1, phases.PhaseCodeA)
	for _, ce := range []domain.ConductingEquipment{a, b, c, d} {
		require.NoError(t, net.Add(ce))
	}

	ab := net.ConnectTerminals(a.Terminal(1), b.Terminal(1))
	cd := net.ConnectTerminals(c.Terminal(1), d.Terminal(1))
	assert.NotSame(t, ab, cd)

	merged := net.ConnectTerminals(a.Terminal(1), c.Terminal(1))
	assert.Same(t, ab, merged)
	assert.Len(t, merged.Terminals, 4)
	assert.Same(t, merged, d.Terminal(1).ConnectivityNode)

	_, ok := net.Node(cd.MRID)
	assert.False(t, ok, "merged node should be dropped")

	assert.ElementsMatch(t,
		[]*domain.Terminal{b.Terminal(1), c.Terminal(1), d.Terminal(1)},
		a.Terminal(1).ConnectedTerminals())
}

func TestNetwork_ConnectMovesTerminal(t *testing.T) {
	net := domain.NewNetwork()
	j := domain.NewJunction("j", 1, phases.PhaseCodeA)
	require.NoError(t, net.Add(j))

	first := net.Connect(j.Terminal(1), "n1")
	second := net.Connect(j.Terminal(1), "n2")

	assert.Empty(t, first.Terminals)
	assert.Equal(t, []*domain.Terminal{j.Terminal(1)}, second.Terminals)
}

func TestNetwork_SnapshotRestore(t *testing.T) {
	net := domain.NewNetwork()
	j := domain.NewJunction("j", 2, phases.PhaseCodeAB)
	require.NoError(t, net.Add(j))

	j.Terminal(1).TracedPhases.SetNormal(phases.A, phases.DirIN, phases.A)
	j.Terminal(2).TracedPhases.SetCurrent(phases.B, phases.DirOUT, phases.B)
	j.Terminal(2).NormalFeederDirection = domain.DirectionDownstream

	snapshot := net.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "j-t1", snapshot[0].TerminalID)

	other := domain.NewNetwork()
	k := domain.NewJunction("j", 2, phases.PhaseCodeAB)
	require.NoError(t, other.Add(k))
	require.NoError(t, other.Restore(snapshot))

	assert.Equal(t, phases.A, k.Terminal(1).TracedPhases.NormalPhase(phases.A))
	assert.Equal(t, phases.B, k.Terminal(2).TracedPhases.CurrentPhase(phases.B))
	assert.Equal(t, domain.DirectionDownstream, k.Terminal(2).NormalFeederDirection)

	err := other.Restore([]domain.TerminalState{{TerminalID: "nope"}})
	assert.ErrorIs(t, err, domain.ErrTerminalNotFound)
}

func TestFeeder_MembershipIsPerScenario(t *testing.T) {
	j := domain.NewJunction("j", 1, phases.PhaseCodeA)
	f := domain.NewFeeder("f", nil)

	assert.True(t, f.AddNormalEquipment(j))
	assert.False(t, f.AddNormalEquipment(j))
	assert.Equal(t, []*domain.Feeder{f}, j.NormalFeeders())
	assert.Empty(t, j.CurrentFeeders())
	assert.Empty(t, f.CurrentEquipment())

	assert.True(t, f.RemoveNormalEquipment(j))
	assert.Empty(t, j.NormalFeeders())
	assert.False(t, f.RemoveNormalEquipment(j))
}

func TestSwitch_OpenStatePerPhase(t *testing.T) {
	sw := domain.NewSwitch("sw", domain.KindBreaker, phases.PhaseCodeABC)
	assert.False(t, sw.IsNormallyOpen(phases.NONE))

	sw.SetNormallyOpen(true, phases.B)
	assert.True(t, sw.IsNormallyOpen(phases.NONE))
	assert.True(t, sw.IsNormallyOpen(phases.B))
	assert.False(t, sw.IsNormallyOpen(phases.A))
	assert.False(t, sw.IsOpen(phases.B), "current state untouched")

	sw.SetOpen(true, phases.NONE)
	assert.True(t, sw.IsOpen(phases.A))
	sw.SetOpen(false, phases.A)
	assert.False(t, sw.IsOpen(phases.A))
	assert.True(t, sw.IsOpen(phases.C))
}

func TestAcLineSegment_Waypoints(t *testing.T) {
	acls := domain.NewAcLineSegment("acls", phases.PhaseCodeABC)
	cut := domain.NewCut("cut", phases.PhaseCodeABC, 5)
	far := domain.NewClamp("far", phases.PhaseCodeABC, 8)
	near := domain.NewClamp("near", phases.PhaseCodeABC, 2)
	tie := domain.NewClamp("tie", phases.PhaseCodeABC, 5)
	acls.AddCut(cut)
	acls.AddClamp(far)
	acls.AddClamp(near)
	acls.AddClamp(tie)

	var order []string
	for _, wp := range acls.Waypoints() {
		order = append(order, wp.Equipment.MRID())
	}
	assert.Equal(t, []string{"near", "tie", "cut", "far"}, order)
	assert.Same(t, acls, cut.AcLineSegment())
	assert.Same(t, cut.SwitchState(), &cut.Switch)
	assert.Equal(t, domain.KindCut, cut.Kind())
}

func TestFeederDirection_Lattice(t *testing.T) {
	assert.True(t, domain.DirectionBoth.Has(domain.DirectionUpstream))
	assert.True(t, domain.DirectionBoth.Has(domain.DirectionDownstream))
	assert.False(t, domain.DirectionBoth.Has(domain.DirectionNone))
	assert.Equal(t, domain.DirectionBoth, domain.DirectionUpstream.Plus(domain.DirectionDownstream))
	assert.Equal(t, domain.DirectionUpstream, domain.DirectionBoth.Minus(domain.DirectionDownstream))
	assert.Equal(t, domain.DirectionUpstream, domain.DirectionDownstream.Complement())
	assert.Equal(t, domain.DirectionBoth, domain.DirectionBoth.Complement())

	d, ok := domain.ParseFeederDirection("DOWNSTREAM")
	assert.True(t, ok)
	assert.Equal(t, domain.DirectionDownstream, d)
}

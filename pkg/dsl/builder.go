package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/cockroachdb/errors"
)

// Builder manages the network construction. Errors are collected and reported by Build.
type Builder struct {
	network *domain.Network
	items   map[string]*EquipmentBuilder
	err     error
}

// New creates a new network builder.
func New() *Builder {
	return &Builder{
		network: domain.NewNetwork(),
		items:   make(map[string]*EquipmentBuilder),
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Add registers pre-built equipment.
// If the same equipment was already added, it returns the existing builder.
func (b *Builder) Add(ce domain.ConductingEquipment) *EquipmentBuilder {
	if eb, ok := b.items[ce.MRID()]; ok {
		if eb.ce != ce {
			b.fail(errors.Wrapf(domain.ErrDuplicateMRID, "equipment %q", ce.MRID()))
		}
		return eb
	}
	eb := &EquipmentBuilder{ce: ce, builder: b}
	if err := b.network.Add(ce); err != nil {
		b.fail(err)
		return eb
	}
	b.items[ce.MRID()] = eb
	return eb
}

// Source adds a single-terminal energy source.
func (b *Builder) Source(id string, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewEnergySource(id, code))
}

// Junction adds a junction with n terminals.
func (b *Builder) Junction(id string, n int, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewJunction(id, n, code))
}

// Busbar adds a busbar section.
func (b *Builder) Busbar(id string, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewBusbarSection(id, code))
}

// Consumer adds an energy consumer.
func (b *Builder) Consumer(id string, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewEnergyConsumer(id, code))
}

// Transformer adds a power transformer with n windings.
func (b *Builder) Transformer(id string, n int, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewPowerTransformer(id, n, code))
}

// Breaker adds a closed breaker.
func (b *Builder) Breaker(id string, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewSwitch(id, domain.KindBreaker, code))
}

// Switch adds a closed switch of the given kind.
func (b *Builder) Switch(id string, kind domain.Kind, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewSwitch(id, kind, code))
}

// Line adds a line segment.
func (b *Builder) Line(id string, code phases.PhaseCode) *EquipmentBuilder {
	return b.Add(domain.NewAcLineSegment(id, code))
}

func (b *Builder) line(lineID string) *domain.AcLineSegment {
	eb, ok := b.items[lineID]
	if !ok {
		b.fail(errors.Wrapf(domain.ErrEquipmentNotFound, "line %q", lineID))
		return nil
	}
	acls, ok := eb.ce.(*domain.AcLineSegment)
	if !ok {
		b.fail(errors.Newf("%q is a %s, not a line segment", lineID, eb.ce.Kind()))
		return nil
	}
	return acls
}

// Clamp adds a clamp on the line, at the given distance from its terminal 1.
func (b *Builder) Clamp(lineID, id string, length float64) *EquipmentBuilder {
	acls := b.line(lineID)
	code := phases.PhaseCodeNONE
	if acls != nil {
		code = acls.Terminal(1).Phases
	}
	clamp := domain.NewClamp(id, code, length)
	eb := b.Add(clamp)
	if acls != nil {
		acls.AddClamp(clamp)
	}
	return eb
}

// Cut adds a closed cut on the line, at the given distance from its terminal 1.
func (b *Builder) Cut(lineID, id string, length float64) *EquipmentBuilder {
	acls := b.line(lineID)
	code := phases.PhaseCodeNONE
	if acls != nil {
		code = acls.Terminal(1).Phases
	}
	cut := domain.NewCut(id, code, length)
	eb := b.Add(cut)
	if acls != nil {
		acls.AddCut(cut)
	}
	return eb
}

// Terminal resolves a reference of the form "id" (terminal 1) or "id:seq".
func (b *Builder) Terminal(ref string) (*domain.Terminal, error) {
	id, seq := ref, 1
	if i := strings.LastIndexByte(ref, ':'); i >= 0 {
		n, err := strconv.Atoi(ref[i+1:])
		if err != nil {
			return nil, errors.Wrapf(err, "terminal reference %q", ref)
		}
		id, seq = ref[:i], n
	}
	eb, ok := b.items[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrEquipmentNotFound, "terminal reference %q", ref)
	}
	t := eb.ce.Core().Terminal(seq)
	if t == nil {
		return nil, errors.Wrapf(domain.ErrTerminalNotFound, "terminal reference %q", ref)
	}
	return t, nil
}

// Node attaches the referenced terminals to the named connectivity node.
func (b *Builder) Node(nodeID string, refs ...string) *Builder {
	for _, ref := range refs {
		t, err := b.Terminal(ref)
		if err != nil {
			b.fail(err)
			continue
		}
		b.network.Connect(t, nodeID)
	}
	return b
}

// Connect joins two terminal references on a shared node.
func (b *Builder) Connect(a, c string) *Builder {
	ta, err := b.Terminal(a)
	if err != nil {
		b.fail(err)
		return b
	}
	tc, err := b.Terminal(c)
	if err != nil {
		b.fail(err)
		return b
	}
	b.network.ConnectTerminals(ta, tc)
	return b
}

// Chain connects the last terminal of each piece of equipment to terminal 1 of the next.
func (b *Builder) Chain(ids ...string) *Builder {
	for i := 1; i < len(ids); i++ {
		prev, ok := b.items[ids[i-1]]
		if !ok {
			b.fail(errors.Wrapf(domain.ErrEquipmentNotFound, "chain %q", ids[i-1]))
			return b
		}
		last := len(prev.ce.Core().Terminals())
		b.Connect(fmt.Sprintf("%s:%d", ids[i-1], last), ids[i])
	}
	return b
}

// Feeder adds a feeder headed at the referenced terminal.
func (b *Builder) Feeder(id, headRef string) *Builder {
	head, err := b.Terminal(headRef)
	if err != nil {
		b.fail(err)
		return b
	}
	if err := b.network.AddFeeder(domain.NewFeeder(id, head)); err != nil {
		b.fail(err)
	}
	return b
}

// Build returns the network, or the first error met while building it.
func (b *Builder) Build() (*domain.Network, error) {
	if b.err != nil {
		return nil, errors.Wrap(b.err, "failed to build network")
	}
	return b.network, nil
}

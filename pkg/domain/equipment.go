package domain

import (
	"fmt"
	"sort"

	"github.com/aretw0/gridwalk/pkg/phases"
)

// Kind identifies the concrete type of a piece of conducting equipment.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEnergySource
	KindJunction
	KindBusbarSection
	KindAcLineSegment
	KindClamp
	KindBreaker
	KindDisconnector
	KindFuse
	KindLoadBreakSwitch
	KindCut
	KindPowerTransformer
	KindEnergyConsumer
)

var kindNames = [...]string{
	KindUnknown:          "Unknown",
	KindEnergySource:     "EnergySource",
	KindJunction:         "Junction",
	KindBusbarSection:    "BusbarSection",
	KindAcLineSegment:    "AcLineSegment",
	KindClamp:            "Clamp",
	KindBreaker:          "Breaker",
	KindDisconnector:     "Disconnector",
	KindFuse:             "Fuse",
	KindLoadBreakSwitch:  "LoadBreakSwitch",
	KindCut:              "Cut",
	KindPowerTransformer: "PowerTransformer",
	KindEnergyConsumer:   "EnergyConsumer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a kind name such as "Breaker" to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindUnknown {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// IsSwitch reports whether equipment of this kind can be opened.
func (k Kind) IsSwitch() bool {
	switch k {
	case KindBreaker, KindDisconnector, KindFuse, KindLoadBreakSwitch, KindCut:
		return true
	}
	return false
}

// ConductingEquipment is implemented by every piece of equipment with terminals.
type ConductingEquipment interface {
	MRID() string
	Kind() Kind
	Core() *Equipment
}

// Equipment holds the state shared by all conducting equipment.
type Equipment struct {
	mrid      string
	kind      Kind
	terminals []*Terminal

	Name string

	// NormallyInService and InService are the normal and current in-service flags.
	NormallyInService bool
	InService         bool

	normalFeeders  []*Feeder
	currentFeeders []*Feeder
}

func (e *Equipment) init(self ConductingEquipment, kind Kind, mrid string, numTerminals int, code phases.PhaseCode) {
	e.mrid = mrid
	e.kind = kind
	e.NormallyInService = true
	e.InService = true
	for i := 1; i <= numTerminals; i++ {
		e.terminals = append(e.terminals, &Terminal{
			MRID:           fmt.Sprintf("%s-t%d", mrid, i),
			SequenceNumber: i,
			Phases:         code,
			Equipment:      self,
		})
	}
}

func (e *Equipment) MRID() string     { return e.mrid }
func (e *Equipment) Kind() Kind       { return e.kind }
func (e *Equipment) Core() *Equipment { return e }

func (e *Equipment) String() string { return e.kind.String() + "(" + e.mrid + ")" }

// Terminals returns the terminals ordered by sequence number. The slice must not be modified.
func (e *Equipment) Terminals() []*Terminal { return e.terminals }

// Terminal returns the terminal with the given sequence number, or nil.
func (e *Equipment) Terminal(sequenceNumber int) *Terminal {
	if sequenceNumber < 1 || sequenceNumber > len(e.terminals) {
		return nil
	}
	return e.terminals[sequenceNumber-1]
}

// NormalFeeders returns the feeders this equipment belongs to in the normal scenario.
func (e *Equipment) NormalFeeders() []*Feeder { return e.normalFeeders }

// CurrentFeeders returns the feeders this equipment belongs to in the current scenario.
func (e *Equipment) CurrentFeeders() []*Feeder { return e.currentFeeders }

// --- Concrete equipment ---

// EnergySource is a feeder head or other point of supply.
type EnergySource struct{ Equipment }

// NewEnergySource creates a single-terminal source.
func NewEnergySource(mrid string, code phases.PhaseCode) *EnergySource {
	s := &EnergySource{}
	s.init(s, KindEnergySource, mrid, 1, code)
	return s
}

// Junction joins conductors without impedance.
type Junction struct{ Equipment }

// NewJunction creates a junction with the given number of terminals.
func NewJunction(mrid string, numTerminals int, code phases.PhaseCode) *Junction {
	j := &Junction{}
	j.init(j, KindJunction, mrid, numTerminals, code)
	return j
}

// BusbarSection is a shared bus. Traces fan out across busbars instead of through them.
type BusbarSection struct{ Equipment }

// NewBusbarSection creates a single-terminal busbar section.
func NewBusbarSection(mrid string, code phases.PhaseCode) *BusbarSection {
	b := &BusbarSection{}
	b.init(b, KindBusbarSection, mrid, 1, code)
	return b
}

// EnergyConsumer is a load.
type EnergyConsumer struct{ Equipment }

// NewEnergyConsumer creates a single-terminal consumer.
func NewEnergyConsumer(mrid string, code phases.PhaseCode) *EnergyConsumer {
	c := &EnergyConsumer{}
	c.init(c, KindEnergyConsumer, mrid, 1, code)
	return c
}

// PowerTransformer connects windings at different voltages.
type PowerTransformer struct{ Equipment }

// NewPowerTransformer creates a transformer with one terminal per winding.
func NewPowerTransformer(mrid string, numTerminals int, code phases.PhaseCode) *PowerTransformer {
	p := &PowerTransformer{}
	p.init(p, KindPowerTransformer, mrid, numTerminals, code)
	return p
}

// Switch is any equipment that can be opened. Open state is kept per phase.
type Switch struct {
	Equipment
	normalOpen  phases.PhaseSet
	currentOpen phases.PhaseSet
}

// Switchable is implemented by equipment whose open state can be queried.
type Switchable interface {
	ConductingEquipment
	SwitchState() *Switch
}

var allPhases = phases.NewPhaseSet(phases.A, phases.B, phases.C, phases.N, phases.X, phases.Y)

// NewSwitch creates a two-terminal switch of the given kind.
func NewSwitch(mrid string, kind Kind, code phases.PhaseCode) *Switch {
	if !kind.IsSwitch() || kind == KindCut {
		kind = KindBreaker
	}
	s := &Switch{}
	s.init(s, kind, mrid, 2, code)
	return s
}

// SwitchState returns the switch itself; it lets Cut share the switch state.
func (s *Switch) SwitchState() *Switch { return s }

func openSet(set phases.PhaseSet, phase phases.SinglePhaseKind) bool {
	if phase == phases.NONE {
		return !set.IsEmpty()
	}
	return set.Contains(phase)
}

func updateOpenSet(set phases.PhaseSet, open bool, phase phases.SinglePhaseKind) phases.PhaseSet {
	mask := allPhases
	if phase != phases.NONE {
		mask = phases.NewPhaseSet(phase)
	}
	if open {
		return set | mask
	}
	return set &^ mask
}

// IsNormallyOpen reports whether the phase is open in the normal scenario. NONE asks whether
// any phase is open.
func (s *Switch) IsNormallyOpen(phase phases.SinglePhaseKind) bool {
	return openSet(s.normalOpen, phase)
}

// IsOpen reports whether the phase is open in the current scenario. NONE asks whether any
// phase is open.
func (s *Switch) IsOpen(phase phases.SinglePhaseKind) bool {
	return openSet(s.currentOpen, phase)
}

// SetNormallyOpen updates the normal open state of one phase, or of all phases for NONE.
func (s *Switch) SetNormallyOpen(open bool, phase phases.SinglePhaseKind) {
	s.normalOpen = updateOpenSet(s.normalOpen, open, phase)
}

// SetOpen updates the current open state of one phase, or of all phases for NONE.
func (s *Switch) SetOpen(open bool, phase phases.SinglePhaseKind) {
	s.currentOpen = updateOpenSet(s.currentOpen, open, phase)
}

// AcLineSegment is a conductor between two terminals, optionally subdivided by clamps and
// cuts placed along its length.
type AcLineSegment struct {
	Equipment
	Length float64
	clamps []*Clamp
	cuts   []*Cut
}

// NewAcLineSegment creates a two-terminal line segment.
func NewAcLineSegment(mrid string, code phases.PhaseCode) *AcLineSegment {
	a := &AcLineSegment{}
	a.init(a, KindAcLineSegment, mrid, 2, code)
	return a
}

// Clamps returns the clamps attached to the segment in insertion order.
func (a *AcLineSegment) Clamps() []*Clamp { return a.clamps }

// Cuts returns the cuts on the segment in insertion order.
func (a *AcLineSegment) Cuts() []*Cut { return a.cuts }

// AddClamp attaches the clamp to the segment.
func (a *AcLineSegment) AddClamp(c *Clamp) {
	c.segment = a
	a.clamps = append(a.clamps, c)
}

// AddCut places the cut on the segment.
func (a *AcLineSegment) AddCut(c *Cut) {
	c.segment = a
	a.cuts = append(a.cuts, c)
}

// Waypoint is one stop along the interior of a line segment.
type Waypoint struct {
	Equipment ConductingEquipment
	Length    float64
}

// Waypoints returns the clamps and cuts of the segment ordered by distance from terminal 1.
// Clamps sort before cuts at the same distance.
func (a *AcLineSegment) Waypoints() []Waypoint {
	wps := make([]Waypoint, 0, len(a.clamps)+len(a.cuts))
	for _, c := range a.clamps {
		wps = append(wps, Waypoint{Equipment: c, Length: c.LengthFromTerminal1})
	}
	for _, c := range a.cuts {
		wps = append(wps, Waypoint{Equipment: c, Length: c.LengthFromTerminal1})
	}
	sort.SliceStable(wps, func(i, j int) bool { return wps[i].Length < wps[j].Length })
	return wps
}

// Clamp is a single-terminal tap onto a line segment.
type Clamp struct {
	Equipment
	LengthFromTerminal1 float64
	segment             *AcLineSegment
}

// NewClamp creates a clamp. Attach it with AcLineSegment.AddClamp.
func NewClamp(mrid string, code phases.PhaseCode, lengthFromTerminal1 float64) *Clamp {
	c := &Clamp{LengthFromTerminal1: lengthFromTerminal1}
	c.init(c, KindClamp, mrid, 1, code)
	return c
}

// AcLineSegment returns the segment the clamp is attached to, or nil.
func (c *Clamp) AcLineSegment() *AcLineSegment { return c.segment }

// Cut is a switchable break along a line segment. Terminal 1 faces terminal 1 of the segment.
type Cut struct {
	Switch
	LengthFromTerminal1 float64
	segment             *AcLineSegment
}

// NewCut creates a cut. Place it with AcLineSegment.AddCut.
func NewCut(mrid string, code phases.PhaseCode, lengthFromTerminal1 float64) *Cut {
	c := &Cut{LengthFromTerminal1: lengthFromTerminal1}
	c.init(c, KindCut, mrid, 2, code)
	return c
}

// AcLineSegment returns the segment the cut belongs to, or nil.
func (c *Cut) AcLineSegment() *AcLineSegment { return c.segment }

package networktrace

import (
	"fmt"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
)

// StepType classifies a hop.
type StepType int

const (
	// StepAll matches every step. It is only used when filtering conditions.
	StepAll StepType = iota
	// StepInternal is a hop through one piece of equipment, or along the interior of a line
	// segment.
	StepInternal
	// StepExternal is a hop across a connectivity node.
	StepExternal
)

func (s StepType) String() string {
	switch s {
	case StepAll:
		return "ALL"
	case StepInternal:
		return "INTERNAL"
	case StepExternal:
		return "EXTERNAL"
	}
	return "UNKNOWN"
}

// Matches reports whether a step of type actual satisfies the filter s.
func (s StepType) Matches(actual StepType) bool {
	return s == StepAll || s == actual
}

// Path is one directed hop between two terminals. A start item is a path from a terminal to
// itself.
type Path struct {
	FromTerminal *domain.Terminal
	ToTerminal   *domain.Terminal

	// TraversedAcLineSegment is the segment whose interior the hop ran along, if any.
	TraversedAcLineSegment *domain.AcLineSegment

	// NominalPhasePaths are the phases carried by the hop. Empty for phase-agnostic traces.
	NominalPhasePaths []phases.NominalPhasePath
}

// FromEquipment returns the equipment the hop leaves.
func (p Path) FromEquipment() domain.ConductingEquipment { return p.FromTerminal.Equipment }

// ToEquipment returns the equipment the hop arrives at.
func (p Path) ToEquipment() domain.ConductingEquipment { return p.ToTerminal.Equipment }

// TracedInternally reports whether both terminals belong to the same equipment.
func (p Path) TracedInternally() bool {
	return p.FromTerminal.Equipment == p.ToTerminal.Equipment
}

// TracedExternally reports whether the hop crossed between two pieces of equipment.
func (p Path) TracedExternally() bool { return !p.TracedInternally() }

// DidTraverseAcLineSegment reports whether the hop ran along a segment interior.
func (p Path) DidTraverseAcLineSegment() bool { return p.TraversedAcLineSegment != nil }

// IsStart reports whether the path is a start item.
func (p Path) IsStart() bool { return p.FromTerminal == p.ToTerminal }

// Type is INTERNAL for hops through equipment or along a segment, EXTERNAL otherwise.
func (p Path) Type() StepType {
	if p.TracedInternally() || p.DidTraverseAcLineSegment() {
		return StepInternal
	}
	return StepExternal
}

// FromPhases returns the source phase of each nominal phase path.
func (p Path) FromPhases() []phases.SinglePhaseKind {
	out := make([]phases.SinglePhaseKind, len(p.NominalPhasePaths))
	for i, np := range p.NominalPhasePaths {
		out[i] = np.From
	}
	return out
}

// ToPhases returns the destination phase of each nominal phase path.
func (p Path) ToPhases() []phases.SinglePhaseKind {
	out := make([]phases.SinglePhaseKind, len(p.NominalPhasePaths))
	for i, np := range p.NominalPhasePaths {
		out[i] = np.To
	}
	return out
}

// Key is the visited-set identity of the hop.
func (p Path) Key() HopKey {
	return HopKey{From: p.FromTerminal, To: p.ToTerminal, Via: p.TraversedAcLineSegment}
}

func (p Path) String() string {
	if p.TraversedAcLineSegment != nil {
		return fmt.Sprintf("%s -[%s]-> %s", p.FromTerminal, p.TraversedAcLineSegment.MRID(), p.ToTerminal)
	}
	return fmt.Sprintf("%s -> %s", p.FromTerminal, p.ToTerminal)
}

// HopKey identifies a directed hop. Reaching the same equipment through another terminal is a
// different hop.
type HopKey struct {
	From *domain.Terminal
	To   *domain.Terminal
	Via  *domain.AcLineSegment
}

// Step is a Path enriched with running counters and a caller payload.
type Step[D any] struct {
	Path

	// NumTerminalSteps counts every hop from the start item.
	NumTerminalSteps int
	// NumEquipmentSteps counts the EXTERNAL hops from the start item.
	NumEquipmentSteps int

	Data D
}

// Type mirrors the classification of the path.
func (s Step[D]) Type() StepType { return s.Path.Type() }

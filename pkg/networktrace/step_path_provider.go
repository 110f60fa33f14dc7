package networktrace

import (
	"slices"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
)

// StepPathProvider enumerates the legal hops out of a path, as seen through one scenario.
//
// Hops alternate between EXTERNAL (across the connectivity node of the arrival terminal) and
// INTERNAL (through the equipment of the arrival terminal). Busbars and line segments with
// clamps or cuts follow their own rules, see NextPaths.
type StepPathProvider struct {
	ops operators.NetworkStateOperators
}

// NewStepPathProvider creates a provider bound to a scenario.
func NewStepPathProvider(ops operators.NetworkStateOperators) *StepPathProvider {
	return &StepPathProvider{ops: ops}
}

// Operators returns the scenario the provider reads.
func (p *StepPathProvider) Operators() operators.NetworkStateOperators { return p.ops }

// NextPaths returns every hop that can follow path.
//
//   - A start item, or an arrival through equipment, leaves across the connectivity node.
//   - Arriving at a terminal on a node with busbars restricts the hop to the busbars. Leaving
//     a busbar never reaches another busbar, nor the terminal the busbar was entered from.
//   - Arriving across a node enters the equipment. On a line segment with clamps or cuts, only
//     the adjacent waypoints are reachable; the hop through a cut is an ordinary internal hop.
//   - Arriving along a line segment keeps heading the same way and also leaves across the node.
//
// When path carries nominal phase paths, every hop keeps only the phases still connected, and
// hops left without phases are dropped. Out-of-service equipment is never reached.
func (p *StepPathProvider) NextPaths(path Path) []Path {
	var next []Path
	switch {
	case path.IsStart():
		next = p.external(path)
	case isBusbar(path.ToTerminal) && path.TracedExternally():
		next = p.external(path)
	default:
		if seg, seq, i, heading, ok := p.lineMove(path); ok {
			next = p.alongLine(seg, seq, i, heading)
			next = append(next, p.external(path)...)
		} else if path.TracedInternally() || path.DidTraverseAcLineSegment() {
			next = p.external(path)
		} else {
			next = p.internal(path)
		}
	}
	return p.carry(path, next)
}

func isBusbar(t *domain.Terminal) bool {
	return t.Equipment != nil && t.Equipment.Kind() == domain.KindBusbarSection
}

func (p *StepPathProvider) inService(t *domain.Terminal) bool {
	return t.Equipment != nil && p.ops.IsInService(t.Equipment)
}

func (p *StepPathProvider) external(path Path) []Path {
	to := path.ToTerminal
	if to.ConnectivityNode == nil {
		return nil
	}

	var candidates []*domain.Terminal
	for _, t := range to.ConnectivityNode.Terminals {
		if t != to && p.inService(t) {
			candidates = append(candidates, t)
		}
	}

	if isBusbar(to) {
		candidates = slices.DeleteFunc(candidates, func(t *domain.Terminal) bool {
			return isBusbar(t) || t == path.FromTerminal
		})
	} else if slices.ContainsFunc(candidates, isBusbar) {
		candidates = slices.DeleteFunc(candidates, func(t *domain.Terminal) bool { return !isBusbar(t) })
	}

	out := make([]Path, 0, len(candidates))
	for _, t := range candidates {
		out = append(out, Path{FromTerminal: to, ToTerminal: t})
	}
	return out
}

func (p *StepPathProvider) internal(path Path) []Path {
	to := path.ToTerminal
	if seg := p.segmentOf(to); seg != nil {
		seq := SegmentSequence(seg, p.ops)
		if i := slices.Index(seq, to); i >= 0 {
			out := p.alongLine(seg, seq, i, -1)
			return append(out, p.alongLine(seg, seq, i, 1)...)
		}
	}

	others := to.OtherTerminals()
	out := make([]Path, 0, len(others))
	for _, t := range others {
		out = append(out, Path{FromTerminal: to, ToTerminal: t})
	}
	return out
}

// segmentOf returns the in-service line segment whose terminal sequence holds t.
func (p *StepPathProvider) segmentOf(t *domain.Terminal) *domain.AcLineSegment {
	var seg *domain.AcLineSegment
	switch eq := t.Equipment.(type) {
	case *domain.AcLineSegment:
		seg = eq
	case *domain.Clamp:
		seg = eq.AcLineSegment()
	case *domain.Cut:
		seg = eq.AcLineSegment()
	}
	if seg == nil || !p.ops.IsInService(seg) {
		return nil
	}
	return seg
}

// SegmentSequence lists the terminals along seg from terminal 1 to terminal 2, through every
// clamp and cut that is in service.
func SegmentSequence(seg *domain.AcLineSegment, ops operators.InServiceOperators) []*domain.Terminal {
	seq := []*domain.Terminal{seg.Terminal(1)}
	for _, wp := range seg.Waypoints() {
		if !ops.IsInService(wp.Equipment) {
			continue
		}
		seq = append(seq, wp.Equipment.Core().Terminals()...)
	}
	return append(seq, seg.Terminal(2))
}

// lineMove reports whether path moved between adjacent terminals of a segment sequence, and
// if so where it arrived and which way it was heading.
func (p *StepPathProvider) lineMove(path Path) (*domain.AcLineSegment, []*domain.Terminal, int, int, bool) {
	seg := path.TraversedAcLineSegment
	if seg == nil {
		cut, ok := path.FromEquipment().(*domain.Cut)
		if !ok || !path.TracedInternally() {
			return nil, nil, 0, 0, false
		}
		seg = cut.AcLineSegment()
	}
	if seg == nil || !p.ops.IsInService(seg) {
		return nil, nil, 0, 0, false
	}

	seq := SegmentSequence(seg, p.ops)
	from, to := slices.Index(seq, path.FromTerminal), slices.Index(seq, path.ToTerminal)
	if from < 0 || to < 0 || from == to {
		return nil, nil, 0, 0, false
	}
	heading := 1
	if to < from {
		heading = -1
	}
	return seg, seq, to, heading, true
}

// alongLine returns the hop from seq[i] to its neighbour in the given heading, if any.
func (p *StepPathProvider) alongLine(seg *domain.AcLineSegment, seq []*domain.Terminal, i, heading int) []Path {
	j := i + heading
	if j < 0 || j >= len(seq) {
		return nil
	}
	from, to := seq[i], seq[j]
	next := Path{FromTerminal: from, ToTerminal: to, TraversedAcLineSegment: seg}
	if from.Equipment == to.Equipment && from.Equipment.Kind() == domain.KindCut {
		next.TraversedAcLineSegment = nil
	}
	return []Path{next}
}

func (p *StepPathProvider) carry(path Path, next []Path) []Path {
	if len(path.NominalPhasePaths) == 0 || len(next) == 0 {
		return next
	}
	arriving := path.ToPhases()
	out := next[:0]
	for _, n := range next {
		n.NominalPhasePaths = carryPhases(n.FromTerminal, n.ToTerminal, arriving)
		if len(n.NominalPhasePaths) > 0 {
			out = append(out, n)
		}
	}
	return out
}

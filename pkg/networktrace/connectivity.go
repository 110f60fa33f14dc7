package networktrace

import (
	"slices"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
)

// TerminalConnectivity maps the nominal phases of from onto the nominal phases of to.
// Matching phases connect directly. Leftover X/Y phases on one side pair, in order, with the
// leftover A/B/C phases on the other side, and finally with leftover X/Y phases.
func TerminalConnectivity(from, to *domain.Terminal) []phases.NominalPhasePath {
	fromKinds := from.Phases.SinglePhases()
	toKinds := to.Phases.SinglePhases()

	var paths []phases.NominalPhasePath
	var fromXY, fromABC, toXY, toABC []phases.SinglePhaseKind
	for _, f := range fromKinds {
		if slices.Contains(toKinds, f) {
			paths = append(paths, phases.NominalPhasePath{From: f, To: f})
			continue
		}
		switch f {
		case phases.X, phases.Y:
			fromXY = append(fromXY, f)
		case phases.A, phases.B, phases.C:
			fromABC = append(fromABC, f)
		}
	}
	for _, t := range toKinds {
		if slices.Contains(fromKinds, t) {
			continue
		}
		switch t {
		case phases.X, phases.Y:
			toXY = append(toXY, t)
		case phases.A, phases.B, phases.C:
			toABC = append(toABC, t)
		}
	}

	paths, fromXY, toABC = pair(paths, fromXY, toABC)
	paths, fromABC, toXY = pair(paths, fromABC, toXY)
	paths, _, _ = pair(paths, fromXY, toXY)
	return paths
}

func pair(paths []phases.NominalPhasePath, from, to []phases.SinglePhaseKind) ([]phases.NominalPhasePath, []phases.SinglePhaseKind, []phases.SinglePhaseKind) {
	n := min(len(from), len(to))
	for i := 0; i < n; i++ {
		paths = append(paths, phases.NominalPhasePath{From: from[i], To: to[i]})
	}
	return paths, from[n:], to[n:]
}

// carryPhases restricts the connectivity from -> to to the phases arriving at from.
func carryPhases(from, to *domain.Terminal, arriving []phases.SinglePhaseKind) []phases.NominalPhasePath {
	all := TerminalConnectivity(from, to)
	out := all[:0:0]
	for _, p := range all {
		if slices.Contains(arriving, p.From) {
			out = append(out, p)
		}
	}
	return out
}

package phases

import "github.com/cockroachdb/errors"

// PhaseStatus is one packed status (normal or current) of a terminal.
// The zero value holds no phases.
type PhaseStatus struct {
	status uint32
}

func mustBeNominal(nominal SinglePhaseKind) {
	if !nominal.IsNominal() {
		panic(errors.AssertionFailedf("invalid nominal phase %s: must be one of A, B, C, N, X, Y", nominal))
	}
}

// Phase returns the actual phase traced into the nominal slot, or NONE.
func (s *PhaseStatus) Phase(nominal SinglePhaseKind) SinglePhaseKind {
	return StatusPhase(s.status, nominal)
}

// Direction returns the direction of the phase traced into the nominal slot.
func (s *PhaseStatus) Direction(nominal SinglePhaseKind) PhaseDirection {
	return StatusDirection(s.status, nominal)
}

// Set replaces the content of the nominal slot. A NONE phase or direction clears the slot.
// It returns false if the slot already held exactly the requested state.
func (s *PhaseStatus) Set(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	mustBeNominal(nominal)

	if actual == NONE || dir == DirNONE {
		if s.Phase(nominal) == NONE {
			return false
		}
		s.status = StatusClear(s.status, nominal)
		return true
	}
	mustBeActual(actual)

	if s.Phase(nominal) == actual && s.Direction(nominal) == dir {
		return false
	}
	s.status = StatusSet(s.status, actual, dir, nominal)
	return true
}

// Add merges a direction for the actual phase into the nominal slot.
//
// Adding a different actual phase to an occupied slot is a crossing-phase error and panics.
// It returns false if the requested direction is already implied by the current one.
func (s *PhaseStatus) Add(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	mustBeNominal(nominal)
	if actual == NONE || dir == DirNONE {
		return false
	}
	mustBeActual(actual)

	if current := s.Phase(nominal); current != NONE && current != actual {
		panic(errors.AssertionFailedf(
			"crossing phases: cannot add %s to nominal %s, it already holds %s", actual, nominal, current))
	}
	if s.Direction(nominal).Has(dir) {
		return false
	}
	s.status = StatusAdd(s.status, actual, dir, nominal)
	return true
}

// Remove clears the direction bits of the actual phase from the nominal slot. It returns false
// unless the slot holds actual with at least the requested direction.
func (s *PhaseStatus) Remove(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	mustBeNominal(nominal)
	if s.Phase(nominal) != actual || !s.Direction(nominal).Has(dir) {
		return false
	}
	s.status = StatusRemove(s.status, actual, dir, nominal)
	return true
}

// RemovePhase clears the nominal slot if it holds actual.
func (s *PhaseStatus) RemovePhase(actual SinglePhaseKind, nominal SinglePhaseKind) bool {
	mustBeNominal(nominal)
	if actual == NONE || s.Phase(nominal) != actual {
		return false
	}
	s.status = StatusClear(s.status, nominal)
	return true
}

// Phases returns the traced phase of every nominal slot in code, in code order.
func (s *PhaseStatus) Phases(code PhaseCode) []SinglePhaseKind {
	nominals := code.SinglePhases()
	out := make([]SinglePhaseKind, len(nominals))
	for i, n := range nominals {
		out[i] = s.Phase(n)
	}
	return out
}

// Raw exposes the packed value for persistence and debugging only.
func (s *PhaseStatus) Raw() uint32 { return s.status }

// Restore loads a packed value previously returned by Raw.
func (s *PhaseStatus) Restore(raw uint32) { s.status = raw }

func mustBeActual(actual SinglePhaseKind) {
	if !actual.IsActual() {
		panic(errors.AssertionFailedf("invalid traced phase %s: must be one of A, B, C, N", actual))
	}
}

// TracedPhases holds the normal and current phase status of one terminal.
type TracedPhases struct {
	normal  PhaseStatus
	current PhaseStatus
}

// Normal returns the status of the as-designed network.
func (tp *TracedPhases) Normal() *PhaseStatus { return &tp.normal }

// Current returns the status of the as-switched network.
func (tp *TracedPhases) Current() *PhaseStatus { return &tp.current }

// NormalPhase is shorthand for Normal().Phase(nominal).
func (tp *TracedPhases) NormalPhase(nominal SinglePhaseKind) SinglePhaseKind {
	return tp.normal.Phase(nominal)
}

// CurrentPhase is shorthand for Current().Phase(nominal).
func (tp *TracedPhases) CurrentPhase(nominal SinglePhaseKind) SinglePhaseKind {
	return tp.current.Phase(nominal)
}

// SetNormal is shorthand for Normal().Set.
func (tp *TracedPhases) SetNormal(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	return tp.normal.Set(actual, dir, nominal)
}

// SetCurrent is shorthand for Current().Set.
func (tp *TracedPhases) SetCurrent(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	return tp.current.Set(actual, dir, nominal)
}

// AddNormal is shorthand for Normal().Add.
func (tp *TracedPhases) AddNormal(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	return tp.normal.Add(actual, dir, nominal)
}

// AddCurrent is shorthand for Current().Add.
func (tp *TracedPhases) AddCurrent(actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) bool {
	return tp.current.Add(actual, dir, nominal)
}

func (tp *TracedPhases) String() string {
	return "TracedPhases{normal=" + formatStatus(tp.normal.status) + ", current=" + formatStatus(tp.current.status) + "}"
}

func formatStatus(status uint32) string {
	out := ""
	for _, n := range []SinglePhaseKind{A, B, C, N} {
		if out != "" {
			out += " "
		}
		out += n.String() + ":" + StatusPhase(status, n).String() + "/" + StatusDirection(status, n).String()
	}
	return out
}

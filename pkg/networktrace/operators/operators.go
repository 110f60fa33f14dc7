/*
Package operators redirects every stateful query and mutation a trace makes to one scenario
of the network.

Each concern (feeder direction, open state, in-service state, traced phases and feeder
membership) is an interface with exactly two implementations, bundled into the Normal and
Current singletons. A trace written against NetworkStateOperators answers questions about
either the as-designed or the as-switched network, depending on which singleton it is given.
Mutators only ever touch the fields of their own scenario.
*/
package operators

import (
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
)

// Scenario names one of the two shadow states of the network.
type Scenario string

const (
	ScenarioNormal  Scenario = "normal"
	ScenarioCurrent Scenario = "current"
)

// FeederDirectionOperators reads and writes terminal feeder directions.
type FeederDirectionOperators interface {
	Direction(t *domain.Terminal) domain.FeederDirection
	// SetDirection replaces the direction. It returns false if nothing changed.
	SetDirection(t *domain.Terminal, d domain.FeederDirection) bool
	// AddDirection merges d into the direction. It returns false if nothing changed.
	AddDirection(t *domain.Terminal, d domain.FeederDirection) bool
	// RemoveDirection removes d from the direction. It returns false if nothing changed.
	RemoveDirection(t *domain.Terminal, d domain.FeederDirection) bool
}

// OpenStateOperators reads and writes switch open state. A NONE phase means any/all phases.
type OpenStateOperators interface {
	IsOpen(sw domain.Switchable, phase phases.SinglePhaseKind) bool
	SetOpen(sw domain.Switchable, open bool, phase phases.SinglePhaseKind)
}

// InServiceOperators reads and writes equipment in-service flags.
type InServiceOperators interface {
	IsInService(ce domain.ConductingEquipment) bool
	SetInService(ce domain.ConductingEquipment, inService bool)
}

// PhaseOperators exposes the phase status of a terminal for one scenario.
type PhaseOperators interface {
	PhaseStatus(t *domain.Terminal) *phases.PhaseStatus
}

// ContainerOperators reads and writes feeder membership.
type ContainerOperators interface {
	Feeders(ce domain.ConductingEquipment) []*domain.Feeder
	FeederEquipment(f *domain.Feeder) []domain.ConductingEquipment
	AddToFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool
	RemoveFromFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool
}

// NetworkStateOperators bundles every concern for one scenario.
type NetworkStateOperators interface {
	FeederDirectionOperators
	OpenStateOperators
	InServiceOperators
	PhaseOperators
	ContainerOperators

	Scenario() Scenario
}

var (
	// Normal operates on the as-designed state of the network.
	Normal NetworkStateOperators = normalOperators{}
	// Current operates on the as-switched state of the network.
	Current NetworkStateOperators = currentOperators{}
)

// ForScenario returns the singleton for the scenario, defaulting to Normal.
func ForScenario(s Scenario) NetworkStateOperators {
	if s == ScenarioCurrent {
		return Current
	}
	return Normal
}

func setDirection(field *domain.FeederDirection, d domain.FeederDirection) bool {
	if *field == d {
		return false
	}
	*field = d
	return true
}

func addDirection(field *domain.FeederDirection, d domain.FeederDirection) bool {
	next := field.Plus(d)
	if next == *field {
		return false
	}
	*field = next
	return true
}

func removeDirection(field *domain.FeederDirection, d domain.FeederDirection) bool {
	next := field.Minus(d)
	if next == *field {
		return false
	}
	*field = next
	return true
}

// --- Normal ---

type normalOperators struct{}

func (normalOperators) Scenario() Scenario { return ScenarioNormal }

func (normalOperators) Direction(t *domain.Terminal) domain.FeederDirection {
	return t.NormalFeederDirection
}

func (normalOperators) SetDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return setDirection(&t.NormalFeederDirection, d)
}

func (normalOperators) AddDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return addDirection(&t.NormalFeederDirection, d)
}

func (normalOperators) RemoveDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return removeDirection(&t.NormalFeederDirection, d)
}

func (normalOperators) IsOpen(sw domain.Switchable, phase phases.SinglePhaseKind) bool {
	return sw.SwitchState().IsNormallyOpen(phase)
}

func (normalOperators) SetOpen(sw domain.Switchable, open bool, phase phases.SinglePhaseKind) {
	sw.SwitchState().SetNormallyOpen(open, phase)
}

func (normalOperators) IsInService(ce domain.ConductingEquipment) bool {
	return ce.Core().NormallyInService
}

func (normalOperators) SetInService(ce domain.ConductingEquipment, inService bool) {
	ce.Core().NormallyInService = inService
}

func (normalOperators) PhaseStatus(t *domain.Terminal) *phases.PhaseStatus {
	return t.TracedPhases.Normal()
}

func (normalOperators) Feeders(ce domain.ConductingEquipment) []*domain.Feeder {
	return ce.Core().NormalFeeders()
}

func (normalOperators) FeederEquipment(f *domain.Feeder) []domain.ConductingEquipment {
	return f.NormalEquipment()
}

func (normalOperators) AddToFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool {
	return f.AddNormalEquipment(ce)
}

func (normalOperators) RemoveFromFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool {
	return f.RemoveNormalEquipment(ce)
}

// --- Current ---

type currentOperators struct{}

func (currentOperators) Scenario() Scenario { return ScenarioCurrent }

func (currentOperators) Direction(t *domain.Terminal) domain.FeederDirection {
	return t.CurrentFeederDirection
}

func (currentOperators) SetDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return setDirection(&t.CurrentFeederDirection, d)
}

func (currentOperators) AddDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return addDirection(&t.CurrentFeederDirection, d)
}

func (currentOperators) RemoveDirection(t *domain.Terminal, d domain.FeederDirection) bool {
	return removeDirection(&t.CurrentFeederDirection, d)
}

func (currentOperators) IsOpen(sw domain.Switchable, phase phases.SinglePhaseKind) bool {
	return sw.SwitchState().IsOpen(phase)
}

func (currentOperators) SetOpen(sw domain.Switchable, open bool, phase phases.SinglePhaseKind) {
	sw.SwitchState().SetOpen(open, phase)
}

func (currentOperators) IsInService(ce domain.ConductingEquipment) bool {
	return ce.Core().InService
}

func (currentOperators) SetInService(ce domain.ConductingEquipment, inService bool) {
	ce.Core().InService = inService
}

func (currentOperators) PhaseStatus(t *domain.Terminal) *phases.PhaseStatus {
	return t.TracedPhases.Current()
}

func (currentOperators) Feeders(ce domain.ConductingEquipment) []*domain.Feeder {
	return ce.Core().CurrentFeeders()
}

func (currentOperators) FeederEquipment(f *domain.Feeder) []domain.ConductingEquipment {
	return f.CurrentEquipment()
}

func (currentOperators) AddToFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool {
	return f.AddCurrentEquipment(ce)
}

func (currentOperators) RemoveFromFeeder(ce domain.ConductingEquipment, f *domain.Feeder) bool {
	return f.RemoveCurrentEquipment(ce)
}

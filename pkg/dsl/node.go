package dsl

import (
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/phases"
)

// EquipmentBuilder provides a fluent API for configuring one piece of equipment.
type EquipmentBuilder struct {
	ce      domain.ConductingEquipment
	builder *Builder
}

// Named sets the display name.
func (e *EquipmentBuilder) Named(name string) *EquipmentBuilder {
	e.ce.Core().Name = name
	return e
}

// Open opens every phase of a switch in both scenarios.
func (e *EquipmentBuilder) Open() *EquipmentBuilder {
	return e.NormallyOpen(phases.NONE).CurrentlyOpen(phases.NONE)
}

// NormallyOpen opens one phase, or every phase for NONE, in the normal scenario.
func (e *EquipmentBuilder) NormallyOpen(phase phases.SinglePhaseKind) *EquipmentBuilder {
	if sw, ok := e.ce.(domain.Switchable); ok {
		sw.SwitchState().SetNormallyOpen(true, phase)
	}
	return e
}

// CurrentlyOpen opens one phase, or every phase for NONE, in the current scenario.
func (e *EquipmentBuilder) CurrentlyOpen(phase phases.SinglePhaseKind) *EquipmentBuilder {
	if sw, ok := e.ce.(domain.Switchable); ok {
		sw.SwitchState().SetOpen(true, phase)
	}
	return e
}

// OutOfService takes the equipment out of service in both scenarios.
func (e *EquipmentBuilder) OutOfService() *EquipmentBuilder {
	core := e.ce.Core()
	core.NormallyInService = false
	core.InService = false
	return e
}

// Length sets the length of a line segment.
func (e *EquipmentBuilder) Length(length float64) *EquipmentBuilder {
	if acls, ok := e.ce.(*domain.AcLineSegment); ok {
		acls.Length = length
	}
	return e
}

// Phases overrides the nominal phases of one terminal.
func (e *EquipmentBuilder) Phases(seq int, code phases.PhaseCode) *EquipmentBuilder {
	if t := e.ce.Core().Terminal(seq); t != nil {
		t.Phases = code
	}
	return e
}

// Equipment returns the underlying equipment.
func (e *EquipmentBuilder) Equipment() domain.ConductingEquipment {
	return e.ce
}

// Then connects this equipment to the next in a chain and returns the next builder.
func (e *EquipmentBuilder) Then(next *EquipmentBuilder) *EquipmentBuilder {
	e.builder.Chain(e.ce.MRID(), next.ce.MRID())
	return next
}

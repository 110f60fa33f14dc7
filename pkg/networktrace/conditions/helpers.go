package conditions

import (
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
)

// Upstream follows the feeder towards its head.
func Upstream[D any](ops operators.NetworkStateOperators) *DirectionCondition[D] {
	return NewDirectionCondition[D](domain.DirectionUpstream, ops)
}

// Downstream follows the feeder away from its head.
func Downstream[D any](ops operators.NetworkStateOperators) *DirectionCondition[D] {
	return NewDirectionCondition[D](domain.DirectionDownstream, ops)
}

// StopAtOpen blocks every switch open on any phase.
func StopAtOpen[D any](ops operators.OpenStateOperators) *OpenCondition[D] {
	return NewOpenCondition[D](ops, phases.NONE)
}

// LimitEquipmentSteps stops expanding limit pieces of equipment away from the start.
func LimitEquipmentSteps[D any](limit int) *EquipmentStepLimitCondition[D] {
	return NewEquipmentStepLimitCondition[D](limit)
}

// LimitEquipmentStepsOfKind stops expanding once limit pieces of equipment of kind were entered.
func LimitEquipmentStepsOfKind[D any](limit int, kind domain.Kind) *EquipmentTypeStepLimitCondition[D] {
	return NewEquipmentTypeStepLimitCondition[D](limit, kind)
}

// WithPhases follows only the phases in code.
func WithPhases[D any](code phases.PhaseCode) *PhaseCondition[D] {
	return NewPhaseCondition[D](code.Set())
}

package conditions

import (
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/traversal"
)

// OpenCondition blocks hops through a switch that is open on the phase. Phase NONE blocks if any
// phase is open.
type OpenCondition[D any] struct {
	ops   operators.OpenStateOperators
	phase phases.SinglePhaseKind
}

// NewOpenCondition creates a condition reading the open state through ops.
func NewOpenCondition[D any](ops operators.OpenStateOperators, phase phases.SinglePhaseKind) *OpenCondition[D] {
	return &OpenCondition[D]{ops: ops, phase: phase}
}

func (c *OpenCondition[D]) ShouldQueue(next networktrace.Step[D], _ *traversal.StepContext, _ networktrace.Step[D], _ *traversal.StepContext) bool {
	if !next.TracedInternally() {
		return true
	}
	sw, ok := next.ToEquipment().(domain.Switchable)
	if !ok {
		return true
	}
	return !c.ops.IsOpen(sw, c.phase)
}

func (c *OpenCondition[D]) ShouldQueueStartItem(networktrace.Step[D]) bool { return true }

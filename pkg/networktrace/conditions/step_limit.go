package conditions

import (
	"fmt"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/traversal"
)

// EquipmentStepLimitCondition stops expanding a step once it is limit pieces of equipment away
// from where the trace started.
type EquipmentStepLimitCondition[D any] struct {
	limit int
}

// NewEquipmentStepLimitCondition creates a limit of limit equipment steps.
func NewEquipmentStepLimitCondition[D any](limit int) *EquipmentStepLimitCondition[D] {
	return &EquipmentStepLimitCondition[D]{limit: limit}
}

func (c *EquipmentStepLimitCondition[D]) ShouldStop(item networktrace.Step[D], _ *traversal.StepContext) bool {
	return item.NumEquipmentSteps >= c.limit
}

// EquipmentTypeStepLimitCondition stops expanding once a trace has entered limit pieces of
// equipment of one kind. The start equipment counts if it is of that kind.
type EquipmentTypeStepLimitCondition[D any] struct {
	traversal.ValueComputer[networktrace.Step[D], int]

	limit int
	kind  domain.Kind
}

// NewEquipmentTypeStepLimitCondition creates a limit of limit pieces of equipment of kind. Each
// condition keeps its own counter, so several may share a trace; adding the same condition twice,
// directly or through a wrapper, panics.
func NewEquipmentTypeStepLimitCondition[D any](limit int, kind domain.Kind) *EquipmentTypeStepLimitCondition[D] {
	c := &EquipmentTypeStepLimitCondition[D]{limit: limit, kind: kind}
	c.ValueComputer = traversal.ValueComputer[networktrace.Step[D], int]{
		ValueKey: fmt.Sprintf("equipment-type-step-limit:%s:%d@%p", kind, limit, c),
		Initial: func(item networktrace.Step[D]) int {
			if item.ToEquipment().Kind() == kind {
				return 1
			}
			return 0
		},
		Next: func(next, _ networktrace.Step[D], count int) int {
			if next.Type() == networktrace.StepExternal && next.ToEquipment().Kind() == kind {
				return count + 1
			}
			return count
		},
	}
	return c
}

func (c *EquipmentTypeStepLimitCondition[D]) ShouldStop(_ networktrace.Step[D], ctx *traversal.StepContext) bool {
	return traversal.ValueAs[int](ctx, c.ValueKey) >= c.limit
}

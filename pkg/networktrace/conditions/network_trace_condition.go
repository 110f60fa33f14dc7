package conditions

import (
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/traversal"
)

type step[D any] = networktrace.Step[D]

func computersOf[D any](cond any) []traversal.ContextValueComputer[step[D]] {
	var out []traversal.ContextValueComputer[step[D]]
	if vc, ok := cond.(traversal.ContextValueComputer[step[D]]); ok {
		out = append(out, vc)
	}
	if src, ok := cond.(traversal.ComputerSource[step[D]]); ok {
		out = append(out, src.ValueComputers()...)
	}
	return out
}

// NetworkTraceStopCondition lets an inner stop condition fire only on steps of one type. Steps
// of any other type are never stopped by it.
type NetworkTraceStopCondition[D any] struct {
	stepType networktrace.StepType
	inner    traversal.StopCondition[step[D]]
}

// NewNetworkTraceStopCondition restricts inner to steps matching stepType. Add the wrapper to a
// trace instead of inner, not as well.
func NewNetworkTraceStopCondition[D any](stepType networktrace.StepType, inner traversal.StopCondition[step[D]]) *NetworkTraceStopCondition[D] {
	return &NetworkTraceStopCondition[D]{stepType: stepType, inner: inner}
}

func (c *NetworkTraceStopCondition[D]) ShouldStop(item step[D], ctx *traversal.StepContext) bool {
	return c.stepType.Matches(item.Type()) && c.inner.ShouldStop(item, ctx)
}

// ValueComputers forwards the context values of the inner condition.
func (c *NetworkTraceStopCondition[D]) ValueComputers() []traversal.ContextValueComputer[step[D]] {
	return computersOf[D](c.inner)
}

// NetworkTraceQueueCondition lets an inner queue condition judge only hops of one type. Hops of
// any other type are queued.
type NetworkTraceQueueCondition[D any] struct {
	stepType networktrace.StepType
	inner    traversal.QueueCondition[step[D]]
}

// NewNetworkTraceQueueCondition restricts inner to hops matching stepType. Add the wrapper to a
// trace instead of inner, not as well.
func NewNetworkTraceQueueCondition[D any](stepType networktrace.StepType, inner traversal.QueueCondition[step[D]]) *NetworkTraceQueueCondition[D] {
	return &NetworkTraceQueueCondition[D]{stepType: stepType, inner: inner}
}

func (c *NetworkTraceQueueCondition[D]) ShouldQueue(next step[D], nextCtx *traversal.StepContext, current step[D], currentCtx *traversal.StepContext) bool {
	if !c.stepType.Matches(next.Type()) {
		return true
	}
	return c.inner.ShouldQueue(next, nextCtx, current, currentCtx)
}

func (c *NetworkTraceQueueCondition[D]) ShouldQueueStartItem(item step[D]) bool {
	return c.inner.ShouldQueueStartItem(item)
}

// ValueComputers forwards the context values of the inner condition.
func (c *NetworkTraceQueueCondition[D]) ValueComputers() []traversal.ContextValueComputer[step[D]] {
	return computersOf[D](c.inner)
}

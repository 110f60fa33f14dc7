package conditions

import (
	"fmt"

	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/traversal"
)

// PhaseConnectivity is the overlap between the phases a hop carries and the phases a trace is
// interested in.
type PhaseConnectivity struct {
	Paths  []phases.NominalPhasePath
	Phases phases.PhaseSet
}

// IsEmpty reports whether no target phase reached the step.
func (pc PhaseConnectivity) IsEmpty() bool { return pc.Phases.IsEmpty() }

// PhaseCondition queues a hop only while it still carries one of the target phases. The overlap
// is kept in the step context so step actions can read it with Connectivity.
type PhaseCondition[D any] struct {
	traversal.ValueComputer[networktrace.Step[D], PhaseConnectivity]

	target phases.PhaseSet
}

// NewPhaseCondition creates a condition following the phases in target. Each condition keeps
// its own connectivity value, so several may share a trace; adding the same condition twice,
// directly or through a wrapper, panics.
func NewPhaseCondition[D any](target phases.PhaseSet) *PhaseCondition[D] {
	c := &PhaseCondition[D]{target: target}
	compute := func(item networktrace.Step[D]) PhaseConnectivity { return c.connectivity(item.Path) }
	c.ValueComputer = traversal.ValueComputer[networktrace.Step[D], PhaseConnectivity]{
		ValueKey: fmt.Sprintf("phase-connectivity:%s@%p", target, c),
		Initial:  compute,
		Next: func(next, _ networktrace.Step[D], _ PhaseConnectivity) PhaseConnectivity {
			return compute(next)
		},
	}
	return c
}

// Target returns the phases the condition follows.
func (c *PhaseCondition[D]) Target() phases.PhaseSet { return c.target }

func (c *PhaseCondition[D]) connectivity(path networktrace.Path) PhaseConnectivity {
	if len(path.NominalPhasePaths) == 0 {
		return PhaseConnectivity{Phases: path.ToTerminal.Phases.Set().Intersect(c.target)}
	}

	var pc PhaseConnectivity
	for _, pp := range path.NominalPhasePaths {
		if c.target.Contains(pp.To) {
			pc.Paths = append(pc.Paths, pp)
			pc.Phases = pc.Phases.With(pp.To)
		}
	}
	return pc
}

func (c *PhaseCondition[D]) ShouldQueue(_ networktrace.Step[D], nextCtx *traversal.StepContext, _ networktrace.Step[D], _ *traversal.StepContext) bool {
	return !c.Connectivity(nextCtx).IsEmpty()
}

func (c *PhaseCondition[D]) ShouldQueueStartItem(item networktrace.Step[D]) bool {
	return !c.connectivity(item.Path).IsEmpty()
}

// Connectivity returns the overlap computed for the step owning ctx.
func (c *PhaseCondition[D]) Connectivity(ctx *traversal.StepContext) PhaseConnectivity {
	return traversal.ValueAs[PhaseConnectivity](ctx, c.ValueKey)
}

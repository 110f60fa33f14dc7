package networktrace

import (
	"context"
	"iter"
	"slices"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/aretw0/gridwalk/pkg/traversal"
	"github.com/cockroachdb/errors"
)

// ActionType selects which delivered steps reach the step actions.
type ActionType int

const (
	// ActionAllSteps invokes the step actions for every delivered step.
	ActionAllSteps ActionType = iota
	// ActionFirstStepOnEquipment invokes the step actions only for the first step that arrives
	// at each piece of equipment during a run.
	ActionFirstStepOnEquipment
)

// ComputeData derives the payload of the step taking next from the current step.
type ComputeData[D any] func(current Step[D], next Path) D

// NetworkTrace walks a network through one scenario, carrying a payload of type D.
type NetworkTrace[D any] struct {
	*traversal.Traversal[Step[D], HopKey]

	provider    *StepPathProvider
	computeData ComputeData[D]
	actionType  ActionType
	actions     []traversal.StepAction[Step[D]]
	seen        map[domain.ConductingEquipment]struct{}
}

// New creates a trace over the scenario selected by ops.
func New[D any](ops operators.NetworkStateOperators, opts ...traversal.Option) *NetworkTrace[D] {
	nt := &NetworkTrace[D]{
		provider:    NewStepPathProvider(ops),
		computeData: func(current Step[D], _ Path) D { return current.Data },
	}
	nt.Traversal = traversal.New[Step[D], HopKey](nt.nextSteps, Step[D].key, opts...)
	nt.Traversal.AddStepAction(nt.dispatch)
	return nt
}

func (s Step[D]) key() HopKey { return s.Path.Key() }

// Operators returns the scenario the trace reads.
func (nt *NetworkTrace[D]) Operators() operators.NetworkStateOperators {
	return nt.provider.Operators()
}

// WithComputeData sets how payloads propagate. By default a step inherits the payload of the
// step it came from.
func (nt *NetworkTrace[D]) WithComputeData(fn ComputeData[D]) *NetworkTrace[D] {
	if fn != nil {
		nt.computeData = fn
	}
	return nt
}

// WithActionType filters which steps reach the step actions.
func (nt *NetworkTrace[D]) WithActionType(at ActionType) *NetworkTrace[D] {
	nt.actionType = at
	return nt
}

// AddStepAction registers a visitor, filtered by the action type in effect during the run.
// Every visitor sees the same steps, in registration order.
func (nt *NetworkTrace[D]) AddStepAction(action traversal.StepAction[Step[D]]) *NetworkTrace[D] {
	if nt.State() == traversal.StateRunning {
		panic(errors.AssertionFailedf("trace %q: AddStepAction while running", nt.Name()))
	}
	nt.actions = append(nt.actions, action)
	return nt
}

// dispatch applies the action filter once per delivered step, then calls every visitor.
func (nt *NetworkTrace[D]) dispatch(step Step[D], ctx *traversal.StepContext) {
	if len(nt.actions) == 0 {
		return
	}
	if nt.actionType == ActionFirstStepOnEquipment && !nt.firstOnEquipment(step) {
		return
	}
	for _, action := range nt.actions {
		action(step, ctx)
	}
}

func (nt *NetworkTrace[D]) firstOnEquipment(step Step[D]) bool {
	if nt.seen == nil {
		nt.seen = make(map[domain.ConductingEquipment]struct{})
	}
	eq := step.ToEquipment()
	if _, ok := nt.seen[eq]; ok {
		return false
	}
	nt.seen[eq] = struct{}{}
	return true
}

// AddStartTerminal seeds the trace with a phase-agnostic start at t.
func (nt *NetworkTrace[D]) AddStartTerminal(t *domain.Terminal, data D) *NetworkTrace[D] {
	nt.AddStartItem(Step[D]{Path: Path{FromTerminal: t, ToTerminal: t}, Data: data})
	return nt
}

// AddStartTerminalPhases seeds the trace at t, carrying the phases of code that t models.
func (nt *NetworkTrace[D]) AddStartTerminalPhases(t *domain.Terminal, code phases.PhaseCode, data D) *NetworkTrace[D] {
	var kinds []phases.SinglePhaseKind
	for _, k := range code.SinglePhases() {
		if t.Phases.Contains(k) {
			kinds = append(kinds, k)
		}
	}
	nt.AddStartItem(Step[D]{
		Path: Path{FromTerminal: t, ToTerminal: t, NominalPhasePaths: phases.StraightPaths(kinds...)},
		Data: data,
	})
	return nt
}

// AddStartEquipment seeds the trace at every terminal of ce.
func (nt *NetworkTrace[D]) AddStartEquipment(ce domain.ConductingEquipment, data D) *NetworkTrace[D] {
	for _, t := range ce.Core().Terminals() {
		nt.AddStartTerminal(t, data)
	}
	return nt
}

// Run walks the network. See traversal.Traversal.Run.
func (nt *NetworkTrace[D]) Run(ctx context.Context) traversal.Outcome {
	nt.seen = make(map[domain.ConductingEquipment]struct{})
	return nt.Traversal.Run(ctx)
}

// All returns the delivered steps lazily. See traversal.Traversal.All.
func (nt *NetworkTrace[D]) All(ctx context.Context) iter.Seq2[Step[D], *traversal.StepContext] {
	inner := nt.Traversal.All(ctx)
	return func(yield func(Step[D], *traversal.StepContext) bool) {
		nt.seen = make(map[domain.ConductingEquipment]struct{})
		inner(yield)
	}
}

// Collect runs the trace and returns the delivered steps in order.
func (nt *NetworkTrace[D]) Collect(ctx context.Context) []Step[D] {
	var steps []Step[D]
	for step := range nt.All(ctx) {
		steps = append(steps, step)
	}
	return steps
}

// Equipment runs the trace and returns every piece of equipment reached, in first-visit order.
func (nt *NetworkTrace[D]) Equipment(ctx context.Context) []domain.ConductingEquipment {
	var out []domain.ConductingEquipment
	for step := range nt.All(ctx) {
		if eq := step.ToEquipment(); !slices.Contains(out, eq) {
			out = append(out, eq)
		}
	}
	return out
}

func (nt *NetworkTrace[D]) nextSteps(current Step[D]) []Step[D] {
	paths := nt.provider.NextPaths(current.Path)
	steps := make([]Step[D], 0, len(paths))
	for _, p := range paths {
		equipmentSteps := current.NumEquipmentSteps
		if p.Type() == StepExternal {
			equipmentSteps++
		}
		steps = append(steps, Step[D]{
			Path:              p,
			NumTerminalSteps:  current.NumTerminalSteps + 1,
			NumEquipmentSteps: equipmentSteps,
			Data:              nt.computeData(current, p),
		})
	}
	return steps
}

package traversal

import (
	"context"
	"iter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// State is the lifecycle state of a Traversal.
type State int

const (
	StateIdle State = iota
	StateSeeded
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeded:
		return "seeded"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Outcome summarizes a run.
type Outcome struct {
	RunID string
	// Delivered is the number of steps handed to the step actions.
	Delivered int
	// Queued is the number of items that entered the frontier, start items included.
	Queued int
	// Branches is the number of branches created, the root branch included.
	Branches int
	// Cancelled is set when the context ended the run early.
	Cancelled bool
}

// NextFunc enumerates the candidates reachable from an item.
type NextFunc[T any] func(item T) []T

// KeyFunc derives the visited key of an item.
type KeyFunc[T any, K comparable] func(item T) K

// Traversal is a breadth-first walker over items of type T, deduplicated by keys of type K.
// A Traversal is not safe for concurrent use.
type Traversal[T any, K comparable] struct {
	cfg  config
	next NextFunc[T]
	key  KeyFunc[T, K]

	queueConditions []QueueCondition[T]
	stopConditions  []StopCondition[T]
	computers       []ContextValueComputer[T]
	computerKeys    map[string]struct{}
	actions         []StepAction[T]

	starts []T
	state  State
}

// New creates an idle traversal.
func New[T any, K comparable](next NextFunc[T], key KeyFunc[T, K], opts ...Option) *Traversal[T, K] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Traversal[T, K]{
		cfg:          cfg,
		next:         next,
		key:          key,
		computerKeys: make(map[string]struct{}),
	}
}

// State returns the lifecycle state.
func (t *Traversal[T, K]) State() State { return t.state }

// Name returns the label given with WithName.
func (t *Traversal[T, K]) Name() string { return t.cfg.name }

func (t *Traversal[T, K]) mustNotRun(op string) {
	if t.state == StateRunning {
		panic(errors.AssertionFailedf("traversal %q: %s while running", t.cfg.name, op))
	}
}

// AddQueueCondition registers a queue condition, and its context value computers if it has any.
func (t *Traversal[T, K]) AddQueueCondition(c QueueCondition[T]) *Traversal[T, K] {
	t.mustNotRun("adding a queue condition")
	t.registerComputers(c)
	t.queueConditions = append(t.queueConditions, c)
	return t
}

// AddStopCondition registers a stop condition, and its context value computers if it has any.
func (t *Traversal[T, K]) AddStopCondition(c StopCondition[T]) *Traversal[T, K] {
	t.mustNotRun("adding a stop condition")
	t.registerComputers(c)
	t.stopConditions = append(t.stopConditions, c)
	return t
}

// AddCondition registers c as a queue condition, a stop condition or both, depending on what
// it implements. Anything else panics.
func (t *Traversal[T, K]) AddCondition(c any) *Traversal[T, K] {
	t.mustNotRun("adding a condition")
	q, isQueue := c.(QueueCondition[T])
	s, isStop := c.(StopCondition[T])
	if !isQueue && !isStop {
		panic(errors.AssertionFailedf("traversal %q: %T is neither a queue nor a stop condition", t.cfg.name, c))
	}
	t.registerComputers(c)
	if isQueue {
		t.queueConditions = append(t.queueConditions, q)
	}
	if isStop {
		t.stopConditions = append(t.stopConditions, s)
	}
	return t
}

func (t *Traversal[T, K]) registerComputers(c any) {
	if cv, ok := c.(ContextValueComputer[T]); ok {
		t.addComputer(cv)
	}
	if src, ok := c.(ComputerSource[T]); ok {
		for _, cv := range src.ValueComputers() {
			t.addComputer(cv)
		}
	}
}

func (t *Traversal[T, K]) addComputer(cv ContextValueComputer[T]) {
	key := cv.Key()
	if _, dup := t.computerKeys[key]; dup {
		panic(errors.AssertionFailedf("traversal %q: context key %q registered twice", t.cfg.name, key))
	}
	t.computerKeys[key] = struct{}{}
	t.computers = append(t.computers, cv)
}

// AddStepAction registers a visitor invoked once per delivered step.
func (t *Traversal[T, K]) AddStepAction(a StepAction[T]) *Traversal[T, K] {
	t.mustNotRun("adding a step action")
	t.actions = append(t.actions, a)
	return t
}

// AddStartItem seeds the traversal.
func (t *Traversal[T, K]) AddStartItem(items ...T) *Traversal[T, K] {
	t.mustNotRun("adding a start item")
	t.starts = append(t.starts, items...)
	if len(t.starts) > 0 && t.state == StateIdle {
		t.state = StateSeeded
	}
	return t
}

// ClearStartItems removes every start item and returns the traversal to idle.
func (t *Traversal[T, K]) ClearStartItems() *Traversal[T, K] {
	t.mustNotRun("clearing start items")
	t.starts = nil
	t.state = StateIdle
	return t
}

// SetBranching toggles branching mode for subsequent runs.
func (t *Traversal[T, K]) SetBranching(enabled bool) *Traversal[T, K] {
	t.mustNotRun("toggling branching")
	t.cfg.branching = enabled
	return t
}

// Branching reports whether branching mode is enabled.
func (t *Traversal[T, K]) Branching() bool { return t.cfg.branching }

// Run walks the network from the start items until the frontier is exhausted or ctx ends.
func (t *Traversal[T, K]) Run(ctx context.Context) Outcome {
	return t.run(ctx, nil)
}

// All returns a lazy sequence of delivered steps. Each iteration restarts from the start items.
// A step is expanded only when the consumer asks for the next one.
func (t *Traversal[T, K]) All(ctx context.Context) iter.Seq2[T, *StepContext] {
	return func(yield func(T, *StepContext) bool) {
		t.run(ctx, yield)
	}
}

func (t *Traversal[T, K]) run(ctx context.Context, yield func(T, *StepContext) bool) Outcome {
	if t.state == StateRunning {
		panic(errors.AssertionFailedf("traversal %q is already running", t.cfg.name))
	}
	t.state = StateRunning
	defer func() { t.state = StateCompleted }()

	r := newRun(t, uuid.NewString())
	start := time.Now()

	t.cfg.logger.Debug("traversal started",
		"run_id", r.id,
		"name", t.cfg.name,
		"start_items", len(t.starts),
		"branching", t.cfg.branching,
	)
	if t.cfg.hooks.OnRunStart != nil {
		t.cfg.hooks.OnRunStart(ctx, &RunEvent{RunID: r.id, Name: t.cfg.name, StartItems: len(t.starts)})
	}

	r.seed()
	r.drain(ctx, yield)

	out := r.outcome()
	elapsed := time.Since(start)
	t.cfg.logger.Debug("traversal completed",
		"run_id", r.id,
		"name", t.cfg.name,
		"delivered", out.Delivered,
		"queued", out.Queued,
		"branches", out.Branches,
		"cancelled", out.Cancelled,
		"duration", elapsed,
	)
	if t.cfg.hooks.OnRunComplete != nil {
		t.cfg.hooks.OnRunComplete(ctx, &RunEvent{
			RunID:      r.id,
			Name:       t.cfg.name,
			StartItems: len(t.starts),
			Outcome:    out,
			Duration:   elapsed,
		})
	}
	return out
}

func (t *Traversal[T, K]) shouldQueue(next T, nextCtx *StepContext, current T, currentCtx *StepContext) bool {
	for _, c := range t.queueConditions {
		if !c.ShouldQueue(next, nextCtx, current, currentCtx) {
			return false
		}
	}
	return true
}

func (t *Traversal[T, K]) shouldQueueStart(item T) bool {
	for _, c := range t.queueConditions {
		if !c.ShouldQueueStartItem(item) {
			return false
		}
	}
	return true
}

func (t *Traversal[T, K]) shouldStop(item T, ctx *StepContext) bool {
	if ctx.IsStartItem && !t.cfg.canStopOnStartItem {
		return false
	}
	for _, c := range t.stopConditions {
		if c.ShouldStop(item, ctx) {
			return true
		}
	}
	return false
}

package traversal

// QueueCondition decides whether a candidate item enters the frontier.
type QueueCondition[T any] interface {
	// ShouldQueue is asked for every candidate reachable from current. nextCtx already holds
	// every computed value for next.
	ShouldQueue(next T, nextCtx *StepContext, current T, currentCtx *StepContext) bool
	// ShouldQueueStartItem is asked once for every start item.
	ShouldQueueStartItem(item T) bool
}

// StopCondition decides whether a delivered item is expanded further.
type StopCondition[T any] interface {
	ShouldStop(item T, ctx *StepContext) bool
}

// ContextValueComputer derives a value stored in the StepContext under a unique key.
type ContextValueComputer[T any] interface {
	Key() string
	ComputeInitialValue(item T) any
	ComputeNextValue(next T, current T, currentValue any) any
}

// ComputerSource is implemented by conditions that wrap other conditions and need the engine to
// register the computers of the wrapped conditions.
type ComputerSource[T any] interface {
	ValueComputers() []ContextValueComputer[T]
}

// ValueComputer adapts typed functions into a ContextValueComputer. Conditions embed it to
// become stateful. ValueKey must be unique among the computers of one traversal.
type ValueComputer[T, V any] struct {
	ValueKey string
	Initial  func(item T) V
	Next     func(next T, current T, currentValue V) V
}

// Key returns ValueKey.
func (c ValueComputer[T, V]) Key() string { return c.ValueKey }

// ComputeInitialValue calls Initial for a start item.
func (c ValueComputer[T, V]) ComputeInitialValue(item T) any {
	return c.Initial(item)
}

// ComputeNextValue calls Next with the typed value of the current item.
func (c ValueComputer[T, V]) ComputeNextValue(next T, current T, currentValue any) any {
	return c.Next(next, current, currentValue.(V))
}

// QueueConditionFunc adapts a function into a QueueCondition that accepts every start item.
type QueueConditionFunc[T any] func(next T, nextCtx *StepContext, current T, currentCtx *StepContext) bool

// ShouldQueue calls f.
func (f QueueConditionFunc[T]) ShouldQueue(next T, nextCtx *StepContext, current T, currentCtx *StepContext) bool {
	return f(next, nextCtx, current, currentCtx)
}

// ShouldQueueStartItem always accepts.
func (f QueueConditionFunc[T]) ShouldQueueStartItem(T) bool { return true }

// StopConditionFunc adapts a function into a StopCondition.
type StopConditionFunc[T any] func(item T, ctx *StepContext) bool

// ShouldStop calls f.
func (f StopConditionFunc[T]) ShouldStop(item T, ctx *StepContext) bool { return f(item, ctx) }

// StepAction is invoked once for every delivered item, whether or not it is expanded.
type StepAction[T any] func(item T, ctx *StepContext)
